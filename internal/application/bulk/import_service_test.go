package bulk

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/importer"
)

type serviceMocks struct {
	records       *MockRecordRepository
	companies     *MockCompanyRepository
	countries     *MockCountryRepository
	cities        *MockCityRepository
	subAreas      *MockSubAreaRepository
	categories    *MockCategoryRepository
	subCategories *MockSubCategoryRepository
	notifications *MockNotificationRepository
	notified      chan *notification.Notification
	registry      *importer.SessionRegistry
}

func newTestService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		records:       new(MockRecordRepository),
		companies:     new(MockCompanyRepository),
		countries:     new(MockCountryRepository),
		cities:        new(MockCityRepository),
		subAreas:      new(MockSubAreaRepository),
		categories:    new(MockCategoryRepository),
		subCategories: new(MockSubCategoryRepository),
		notifications: new(MockNotificationRepository),
		notified:      make(chan *notification.Notification, 4),
		registry:      importer.NewSessionRegistry(time.Hour, zap.NewNop()),
	}
	m.notifications.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			m.notified <- args.Get(1).(*notification.Notification)
		}).
		Return(nil).Maybe()
	svc := NewService(
		m.registry, m.records, m.companies,
		m.countries, m.cities, m.subAreas, m.categories, m.subCategories,
		m.notifications, 1<<20, zap.NewNop(),
	)
	return svc, m
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
}

// stubTaxonomy wires one country (SA), one city (Riyadh), one sub-area
// (Al Olaya), one category (Restaurants) and one sub-category (Cafes).
func stubTaxonomy(m *serviceMocks) (*taxonomy.Country, *taxonomy.City, *taxonomy.Category) {
	country, _ := taxonomy.NewCountry("SA", "Saudi Arabia")
	city, _ := taxonomy.NewCity(country.ID, "Riyadh", "riyadh")
	area, _ := taxonomy.NewSubArea(city.ID, "Al Olaya", "al-olaya")
	category, _ := taxonomy.NewCategory("Restaurants", "restaurants")
	sub, _ := taxonomy.NewSubCategory(category.ID, "Cafes", "cafes")

	m.countries.On("FindAll", mock.Anything, mock.Anything).Return([]taxonomy.Country{*country}, nil)
	m.cities.On("FindAll", mock.Anything, mock.Anything).Return([]taxonomy.City{*city}, nil)
	m.subAreas.On("FindAll", mock.Anything, mock.Anything).Return([]taxonomy.SubArea{*area}, nil)
	m.categories.On("FindAll", mock.Anything, mock.Anything).Return([]taxonomy.Category{*category}, nil)
	m.subCategories.On("FindAll", mock.Anything, mock.Anything).Return([]taxonomy.SubCategory{*sub}, nil)
	return country, city, category
}

// waitTerminal polls the registry until the session reaches a terminal state
func waitTerminal(t *testing.T, svc *Service, actor Actor, sessionID string) *bulk.Session {
	t.Helper()
	var final *bulk.Session
	require.Eventually(t, func() bool {
		snapshot, err := svc.Status(actor, sessionID)
		if err != nil {
			return false
		}
		if !snapshot.Status.IsTerminal() {
			return false
		}
		final = snapshot
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return final
}

func TestImportService_Start_ImportsRows(t *testing.T) {
	svc, m := newTestService(t)
	stubTaxonomy(m)

	m.companies.On("FindBySlug", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	m.companies.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	csv := "name,country,city,sub_area,category,sub_category,phone\n" +
		"Najd Kitchen,SA,Riyadh,Al Olaya,Restaurants,Cafes,+966501234567\n" +
		"Diwan Cafe,sa,riyadh,,restaurants,,\n"

	session, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName: "companies.csv",
		Data:     []byte(csv),
	})
	require.NoError(t, err)
	require.Equal(t, 2, session.TotalRows)

	final := waitTerminal(t, svc, adminActor(), session.ID)
	assert.Equal(t, bulk.SessionCompleted, final.Status)
	assert.Equal(t, 2, final.Succeeded)
	assert.Equal(t, 0, final.Failed)

	m.companies.AssertNumberOfCalls(t, "Save", 2)
	saved := m.companies.Calls[len(m.companies.Calls)-1].Arguments.Get(1).(*directory.Company)
	assert.True(t, saved.IsActive)
}

func TestImportService_Start_UnknownCityRecordsError(t *testing.T) {
	svc, m := newTestService(t)
	stubTaxonomy(m)

	m.companies.On("FindBySlug", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	m.companies.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	csv := "name,country,city,category\n" +
		"Najd Kitchen,SA,Atlantis,Restaurants\n" +
		"Diwan Cafe,SA,Riyadh,Restaurants\n"

	session, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName: "companies.csv",
		Data:     []byte(csv),
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, adminActor(), session.ID)
	assert.Equal(t, bulk.SessionCompleted, final.Status)
	assert.Equal(t, 1, final.Succeeded)
	assert.Equal(t, 1, final.Failed)
	require.Len(t, final.Errors, 1)
	assert.Equal(t, importer.ErrCodeUnknownCity, final.Errors[0].Code)
	assert.Equal(t, 2, final.Errors[0].Row)
}

func TestImportService_Start_DuplicateSkipped(t *testing.T) {
	svc, m := newTestService(t)
	country, city, category := stubTaxonomy(m)

	existing, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       "Najd Kitchen",
		CategoryID: category.ID,
		CountryID:  country.ID,
		CityID:     city.ID,
	})
	require.NoError(t, err)

	m.companies.On("FindBySlug", mock.Anything, "najd-kitchen").Return(existing, nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	csv := "name,country,city,category\nNajd Kitchen,SA,Riyadh,Restaurants\n"

	session, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName:     "companies.csv",
		Data:         []byte(csv),
		ConflictMode: "skip",
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, adminActor(), session.ID)
	assert.Equal(t, bulk.SessionCompleted, final.Status)
	assert.Equal(t, 1, final.Skipped)
	require.Len(t, final.Skips, 1)
	assert.Equal(t, importer.ErrCodeDuplicateName, final.Skips[0].Code)
	m.companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportService_Start_DuplicateUpdated(t *testing.T) {
	svc, m := newTestService(t)
	country, city, category := stubTaxonomy(m)

	// filed under a country that no longer matches the CSV row
	existing, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       "Najd Kitchen",
		CategoryID: category.ID,
		CountryID:  uuid.New(),
		CityID:     city.ID,
	})
	require.NoError(t, err)

	m.companies.On("FindBySlug", mock.Anything, "najd-kitchen").Return(existing, nil)
	m.companies.On("Save", mock.Anything, existing).Return(nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	csv := "name,country,city,category,phone\nNajd Kitchen,SA,Riyadh,Restaurants,+966501234567\n"

	session, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName:     "companies.csv",
		Data:         []byte(csv),
		ConflictMode: "update",
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, adminActor(), session.ID)
	assert.Equal(t, bulk.SessionCompleted, final.Status)
	assert.Equal(t, 1, final.Succeeded)
	assert.Equal(t, "+966501234567", existing.Phone)
	assert.Equal(t, country.ID, existing.CountryID)
}

func TestImportService_Start_NotifiesStarter(t *testing.T) {
	svc, m := newTestService(t)
	stubTaxonomy(m)

	m.companies.On("FindBySlug", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	m.companies.On("Save", mock.Anything, mock.Anything).Return(nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	actor := adminActor()
	csv := "name,country,city,category\nNajd Kitchen,SA,Riyadh,Restaurants\n"

	session, err := svc.Start(context.Background(), actor, StartInput{
		FileName: "companies.csv",
		Data:     []byte(csv),
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, actor, session.ID)
	assert.Equal(t, bulk.SessionCompleted, final.Status)

	select {
	case n := <-m.notified:
		require.NotNil(t, n.UserID)
		assert.Equal(t, actor.UserID, *n.UserID)
		assert.Nil(t, n.CompanyID)
		assert.Equal(t, notification.KindSystem, n.Kind)
		assert.Contains(t, n.Title, "companies.csv")
	case <-time.After(5 * time.Second):
		t.Fatal("import completion notification was never saved")
	}
}

func TestImportService_Start_DuplicateFailsSession(t *testing.T) {
	svc, m := newTestService(t)
	country, city, category := stubTaxonomy(m)

	existing, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       "Najd Kitchen",
		CategoryID: category.ID,
		CountryID:  country.ID,
		CityID:     city.ID,
	})
	require.NoError(t, err)

	m.companies.On("FindBySlug", mock.Anything, "najd-kitchen").Return(existing, nil)
	m.records.On("Save", mock.Anything, mock.Anything).Return(nil)

	csv := "name,country,city,category\n" +
		"Najd Kitchen,SA,Riyadh,Restaurants\n" +
		"Diwan Cafe,SA,Riyadh,Restaurants\n"

	session, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName:     "companies.csv",
		Data:         []byte(csv),
		ConflictMode: "fail",
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, adminActor(), session.ID)
	assert.Equal(t, bulk.SessionFailed, final.Status)
	// The second row is never reached once the session fails.
	assert.Equal(t, 1, final.Processed)
}

func TestImportService_Start_MissingColumns(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName: "companies.csv",
		Data:     []byte("name,phone\nNajd Kitchen,+966501234567\n"),
	})
	require.Error(t, err)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "MISSING_COLUMNS", derr.Code)
	assert.Contains(t, derr.Message, "country")
	assert.Contains(t, derr.Message, "city")
	assert.Contains(t, derr.Message, "category")
}

func TestImportService_Start_RequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Start(context.Background(), Actor{UserID: uuid.New(), Role: identity.RoleCompanyOwner}, StartInput{
		FileName: "companies.csv",
		Data:     []byte("name,country,city,category\n"),
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestImportService_Start_FileTooLarge(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Start(context.Background(), adminActor(), StartInput{
		FileName: "companies.csv",
		Data:     make([]byte, 2<<20),
	})
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "FILE_TOO_LARGE", derr.Code)
}

func TestImportService_PauseResumeCancel(t *testing.T) {
	svc, m := newTestService(t)

	session := bulk.NewSession("companies.csv", uuid.New())
	m.registry.Register(session)

	record, err := bulk.NewRecord(session, 128, bulk.ConflictModeSkip)
	require.NoError(t, err)
	m.records.On("FindBySessionID", mock.Anything, session.ID).Return(record, nil)
	m.records.On("Save", mock.Anything, record).Return(nil)

	admin := adminActor()

	paused, err := svc.Pause(context.Background(), admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.SessionPaused, paused.Status)

	resumed, err := svc.Resume(context.Background(), admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.SessionRunning, resumed.Status)

	cancelled, err := svc.Cancel(context.Background(), admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.SessionCancelled, cancelled.Status)
	assert.Equal(t, bulk.SessionCancelled, record.Status)

	// Once cancelled, pause is an invalid transition.
	_, err = svc.Pause(context.Background(), admin, session.ID)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_TRANSITION", derr.Code)
}

func TestImportService_History(t *testing.T) {
	svc, m := newTestService(t)

	session := bulk.NewSession("companies.csv", uuid.New())
	record, err := bulk.NewRecord(session, 128, bulk.ConflictModeSkip)
	require.NoError(t, err)

	m.records.On("FindAll", mock.Anything, mock.Anything).Return([]bulk.Record{*record}, nil)
	m.records.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	page, err := svc.History(context.Background(), adminActor(), shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, session.ID, page.Items[0].SessionID)
}
