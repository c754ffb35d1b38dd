package bulk

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/identity"
	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/importer"
)

// requiredHeaders are the columns every company CSV must carry
var requiredHeaders = []string{"name", "country", "city", "category"}

// pausePollInterval is how often a paused worker re-checks its session
const pausePollInterval = 200 * time.Millisecond

// recordSyncEvery is the row interval between audit-record checkpoints
const recordSyncEvery = 50

// Actor is the authenticated caller as seen by the import service
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor may run imports
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// StartInput carries one uploaded CSV
type StartInput struct {
	FileName     string
	Data         []byte
	ConflictMode string
}

// Service runs company CSV imports. Each import is a background worker
// feeding a registry session; the persistent Record mirrors the session so
// history survives restarts.
type Service struct {
	registry      *importer.SessionRegistry
	records       bulk.RecordRepository
	companies     directory.CompanyRepository
	countries     taxonomy.CountryRepository
	cities        taxonomy.CityRepository
	subAreas      taxonomy.SubAreaRepository
	categories    taxonomy.CategoryRepository
	subCategories taxonomy.SubCategoryRepository
	notifications notification.Repository
	logger        *zap.Logger
	maxFileSize   int64
}

// NewService creates the import service
func NewService(
	registry *importer.SessionRegistry,
	records bulk.RecordRepository,
	companies directory.CompanyRepository,
	countries taxonomy.CountryRepository,
	cities taxonomy.CityRepository,
	subAreas taxonomy.SubAreaRepository,
	categories taxonomy.CategoryRepository,
	subCategories taxonomy.SubCategoryRepository,
	notifications notification.Repository,
	maxFileSize int64,
	logger *zap.Logger,
) *Service {
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	return &Service{
		registry:      registry,
		records:       records,
		companies:     companies,
		countries:     countries,
		cities:        cities,
		subAreas:      subAreas,
		categories:    categories,
		subCategories: subCategories,
		notifications: notifications,
		logger:        logger,
		maxFileSize:   maxFileSize,
	}
}

// Start validates the upload, registers a session and launches the worker.
// It returns as soon as the session exists; progress is observed via Status.
func (s *Service) Start(ctx context.Context, actor Actor, input StartInput) (*bulk.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	if int64(len(input.Data)) > s.maxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d byte limit", s.maxFileSize))
	}
	mode := bulk.ConflictMode(input.ConflictMode)
	if input.ConflictMode == "" {
		mode = bulk.ConflictModeSkip
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONFLICT_MODE", "Unknown conflict mode: "+input.ConflictMode)
	}

	parser, err := importer.NewCSVParser(bytes.NewReader(input.Data))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if missing := parser.MissingHeaders(requiredHeaders); len(missing) > 0 {
		return nil, shared.NewDomainError("MISSING_COLUMNS",
			"Missing required columns: "+strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "File contains no data rows")
	}

	lookups, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}

	session := bulk.NewSession(input.FileName, actor.UserID)
	session.TotalRows = len(rows)
	s.registry.Register(session)

	record, err := bulk.NewRecord(session, int64(len(input.Data)), mode)
	if err != nil {
		return nil, err
	}
	record.TotalRows = len(rows)
	if err := s.records.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save import record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start import")
	}

	go s.run(session.ID, record, rows, mode, lookups)

	snapshot, err := s.registry.Get(session.ID)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Status returns a snapshot of one session
func (s *Service) Status(actor Actor, sessionID string) (*bulk.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	snapshot, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns snapshots of all live sessions, newest first
func (s *Service) List(actor Actor) ([]bulk.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	return s.registry.List(), nil
}

// Pause suspends a running import between rows
func (s *Service) Pause(ctx context.Context, actor Actor, sessionID string) (*bulk.Session, error) {
	return s.transition(ctx, actor, sessionID, (*bulk.Session).Pause)
}

// Resume restarts a paused import
func (s *Service) Resume(ctx context.Context, actor Actor, sessionID string) (*bulk.Session, error) {
	return s.transition(ctx, actor, sessionID, (*bulk.Session).Resume)
}

// Cancel aborts an import; the worker stops at the next row boundary
func (s *Service) Cancel(ctx context.Context, actor Actor, sessionID string) (*bulk.Session, error) {
	return s.transition(ctx, actor, sessionID, (*bulk.Session).Cancel)
}

func (s *Service) transition(ctx context.Context, actor Actor, sessionID string, op func(*bulk.Session) error) (*bulk.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	snapshot, err := s.registry.Update(sessionID, op)
	if err != nil {
		return nil, err
	}
	s.syncRecord(ctx, &snapshot)
	return &snapshot, nil
}

// History returns the persistent audit trail of past imports
func (s *Service) History(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[bulk.Record], error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	filter.Normalize()
	records, err := s.records.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list import history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list imports")
	}
	total, err := s.records.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list imports")
	}
	result := shared.NewPaginated(records, total, filter.Page, filter.PageSize)
	return &result, nil
}

// run is the import worker. It owns the row loop; all session mutation goes
// through the registry so pause and cancel are observed between rows.
func (s *Service) run(sessionID string, record *bulk.Record, rows []*importer.Row, mode bulk.ConflictMode, lookups *taxonomyLookups) {
	ctx := context.Background()

	for _, row := range rows {
		if stopped := s.waitWhilePaused(sessionID); stopped {
			s.finish(ctx, sessionID, record, nil)
			return
		}

		rowErr := s.importRow(ctx, row, mode, lookups)
		fatal := rowErr != nil && rowErr.Code == importer.ErrCodeDuplicateName && mode == bulk.ConflictModeFail
		snapshot, err := s.registry.Update(sessionID, func(session *bulk.Session) error {
			switch {
			case rowErr == nil:
				session.RecordSuccess()
			case rowErr.Code == importer.ErrCodeDuplicateName && mode == bulk.ConflictModeSkip:
				session.RecordSkip(*rowErr)
			default:
				session.RecordError(*rowErr)
			}
			return nil
		})
		if err != nil {
			// Session swept under us; nothing left to report into.
			s.logger.Warn("Import session disappeared mid-run", zap.String("session_id", sessionID))
			return
		}
		if fatal {
			s.finish(ctx, sessionID, record, (*bulk.Session).Fail)
			return
		}
		// Checkpoint progress so the audit row stays useful if we crash.
		if snapshot.Processed%recordSyncEvery == 0 {
			record.SyncFromSession(&snapshot)
			if err := s.records.Save(ctx, record); err != nil {
				s.logger.Error("Failed to checkpoint import record", zap.Error(err))
			}
		}
	}

	s.finish(ctx, sessionID, record, (*bulk.Session).Complete)
}

// waitWhilePaused blocks while the session is paused. It reports true when
// the session was cancelled or vanished and the worker must stop.
func (s *Service) waitWhilePaused(sessionID string) bool {
	for {
		status, err := s.registry.Status(sessionID)
		if err != nil {
			return true
		}
		switch status {
		case bulk.SessionRunning:
			return false
		case bulk.SessionPaused:
			time.Sleep(pausePollInterval)
		default:
			return true
		}
	}
}

func (s *Service) finish(ctx context.Context, sessionID string, record *bulk.Record, op func(*bulk.Session) error) {
	snapshot, err := s.registry.Update(sessionID, func(session *bulk.Session) error {
		if op != nil && !session.Status.IsTerminal() {
			return op(session)
		}
		return nil
	})
	if err != nil {
		return
	}
	record.SyncFromSession(&snapshot)
	if err := s.records.Save(ctx, record); err != nil {
		s.logger.Error("Failed to sync import record", zap.Error(err))
	}
	s.logger.Info("Import finished",
		zap.String("session_id", sessionID),
		zap.String("status", string(snapshot.Status)),
		zap.Int("succeeded", snapshot.Succeeded),
		zap.Int("failed", snapshot.Failed),
		zap.Int("skipped", snapshot.Skipped))
	s.notifyFinished(ctx, &snapshot)
}

// notifyFinished tells the admin who started the import how it ended
func (s *Service) notifyFinished(ctx context.Context, snapshot *bulk.Session) {
	userID := snapshot.StartedBy
	n, err := notification.New(nil, &userID, notification.KindSystem,
		fmt.Sprintf("اكتمل استيراد %s", snapshot.FileName),
		fmt.Sprintf("الحالة: %s، نجح %d، فشل %d، تم تخطي %d",
			snapshot.Status, snapshot.Succeeded, snapshot.Failed, snapshot.Skipped))
	if err != nil {
		return
	}
	if err := s.notifications.Save(ctx, n); err != nil {
		s.logger.Error("Failed to save import notification", zap.Error(err))
	}
}

func (s *Service) syncRecord(ctx context.Context, snapshot *bulk.Session) {
	record, err := s.records.FindBySessionID(ctx, snapshot.ID)
	if err != nil {
		return
	}
	record.SyncFromSession(snapshot)
	if err := s.records.Save(ctx, record); err != nil {
		s.logger.Error("Failed to sync import record", zap.Error(err))
	}
}

// importRow maps one CSV row to a company. A nil return means the row was
// imported (or updated); otherwise the RowError says why it was not.
func (s *Service) importRow(ctx context.Context, row *importer.Row, mode bulk.ConflictMode, lookups *taxonomyLookups) *bulk.RowError {
	name := row.Get("name")
	if name == "" {
		return rowError(row, "name", importer.ErrCodeRequiredField, "Company name is required")
	}

	country := lookups.country(row.Get("country"))
	if country == nil {
		return rowError(row, "country", importer.ErrCodeUnknownCountry, "Unknown country: "+row.Get("country"))
	}
	city := lookups.city(country.ID, row.Get("city"))
	if city == nil {
		return rowError(row, "city", importer.ErrCodeUnknownCity, "Unknown city: "+row.Get("city"))
	}
	category := lookups.category(row.Get("category"))
	if category == nil {
		return rowError(row, "category", importer.ErrCodeUnknownCategory, "Unknown category: "+row.Get("category"))
	}

	var subAreaID *uuid.UUID
	if v := row.Get("sub_area"); v != "" {
		area := lookups.subArea(city.ID, v)
		if area == nil {
			return rowError(row, "sub_area", importer.ErrCodeUnknownArea, "Unknown sub-area: "+v)
		}
		subAreaID = &area.ID
	}
	var subCategoryID *uuid.UUID
	if v := row.Get("sub_category"); v != "" {
		sub := lookups.subCategory(category.ID, v)
		if sub == nil {
			return rowError(row, "sub_category", importer.ErrCodeUnknownCategory, "Unknown sub-category: "+v)
		}
		subCategoryID = &sub.ID
	}

	existing, err := s.companies.FindBySlug(ctx, slug.Make(name))
	if err == nil && existing != nil {
		switch mode {
		case bulk.ConflictModeUpdate:
			return s.updateExisting(ctx, row, existing, country.ID, city.ID, subAreaID, category.ID, subCategoryID)
		default:
			return rowError(row, "name", importer.ErrCodeDuplicateName, "Company already exists: "+name)
		}
	}

	company, err := directory.NewCompany(directory.NewCompanyInput{
		Name:       name,
		CategoryID: category.ID,
		CountryID:  country.ID,
		CityID:     city.ID,
	})
	if err != nil {
		return rowError(row, "name", importer.ErrCodeInvalidValue, err.Error())
	}
	company.Description = row.Get("description")
	company.SubCategoryID = subCategoryID
	company.SubAreaID = subAreaID
	company.Phone = row.Get("phone")
	company.Email = row.Get("email")
	company.Website = row.Get("website")
	company.Address = row.Get("address")

	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to save imported company", zap.Error(err), zap.Int("row", row.LineNumber))
		return rowError(row, "", importer.ErrCodeMalformedRow, "Failed to save company")
	}
	return nil
}

func (s *Service) updateExisting(ctx context.Context, row *importer.Row, company *directory.Company, countryID, cityID uuid.UUID, subAreaID *uuid.UUID, categoryID uuid.UUID, subCategoryID *uuid.UUID) *bulk.RowError {
	company.CountryID = countryID
	company.CityID = cityID
	company.SubAreaID = subAreaID
	company.CategoryID = categoryID
	company.SubCategoryID = subCategoryID
	if v := row.Get("description"); v != "" {
		company.Description = v
	}
	if v := row.Get("phone"); v != "" {
		company.Phone = v
	}
	if v := row.Get("email"); v != "" {
		company.Email = v
	}
	if v := row.Get("website"); v != "" {
		company.Website = v
	}
	if v := row.Get("address"); v != "" {
		company.Address = v
	}
	company.Touch()
	if err := s.companies.Save(ctx, company); err != nil {
		s.logger.Error("Failed to update imported company", zap.Error(err), zap.Int("row", row.LineNumber))
		return rowError(row, "", importer.ErrCodeMalformedRow, "Failed to update company")
	}
	return nil
}

func rowError(row *importer.Row, column, code, message string) *bulk.RowError {
	return &bulk.RowError{
		Row:     row.LineNumber,
		Column:  column,
		Code:    code,
		Message: message,
	}
}
