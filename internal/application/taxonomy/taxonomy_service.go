package taxonomy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// Service manages the location and category trees. Deletion is guarded: a
// node that still has active companies under it cannot be removed.
type Service struct {
	countries     taxonomy.CountryRepository
	cities        taxonomy.CityRepository
	subAreas      taxonomy.SubAreaRepository
	categories    taxonomy.CategoryRepository
	subCategories taxonomy.SubCategoryRepository
	companies     directory.CompanyRepository
	refresher     taxonomy.CountRefresher
	logger        *zap.Logger
}

// NewService creates the taxonomy service
func NewService(
	countries taxonomy.CountryRepository,
	cities taxonomy.CityRepository,
	subAreas taxonomy.SubAreaRepository,
	categories taxonomy.CategoryRepository,
	subCategories taxonomy.SubCategoryRepository,
	companies directory.CompanyRepository,
	refresher taxonomy.CountRefresher,
	logger *zap.Logger,
) *Service {
	return &Service{
		countries:     countries,
		cities:        cities,
		subAreas:      subAreas,
		categories:    categories,
		subCategories: subCategories,
		companies:     companies,
		refresher:     refresher,
		logger:        logger,
	}
}

// ListCountries returns all countries ordered by name
func (s *Service) ListCountries(ctx context.Context) ([]CountryView, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = shared.MaxPageSize
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	countries, err := s.countries.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list countries", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list countries")
	}
	views := make([]CountryView, 0, len(countries))
	for i := range countries {
		views = append(views, newCountryView(&countries[i]))
	}
	return views, nil
}

// GetCountryByCode resolves a country from its URL code
func (s *Service) GetCountryByCode(ctx context.Context, code string) (*CountryView, error) {
	country, err := s.countries.FindByCode(ctx, code)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	view := newCountryView(country)
	return &view, nil
}

// CreateCountry adds a new country
func (s *Service) CreateCountry(ctx context.Context, input CountryInput) (*CountryView, error) {
	country, err := taxonomy.NewCountry(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	country.Flag = input.Flag

	exists, err := s.countries.ExistsByCode(ctx, country.Code)
	if err != nil {
		s.logger.Error("Failed to check country code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create country")
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "A country with this code already exists")
	}

	if err := s.countries.Save(ctx, country); err != nil {
		s.logger.Error("Failed to save country", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create country")
	}

	s.logger.Info("Country created", zap.String("code", country.Code))
	view := newCountryView(country)
	return &view, nil
}

// UpdateCountry edits name and flag; the code is immutable once created
func (s *Service) UpdateCountry(ctx context.Context, id uuid.UUID, input CountryInput) (*CountryView, error) {
	country, err := s.countries.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	country.Name = input.Name
	country.Flag = input.Flag
	country.Touch()

	if err := s.countries.Save(ctx, country); err != nil {
		s.logger.Error("Failed to update country", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update country")
	}
	view := newCountryView(country)
	return &view, nil
}

// DeleteCountry removes a country that has no active companies
func (s *Service) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, taxonomy.KindCountry, id, func() error {
		return s.countries.Delete(ctx, id)
	})
}

// ListCities returns the cities of a country
func (s *Service) ListCities(ctx context.Context, countryID uuid.UUID) ([]CityView, error) {
	cities, err := s.cities.FindByCountry(ctx, countryID)
	if err != nil {
		s.logger.Error("Failed to list cities", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list cities")
	}
	views := make([]CityView, 0, len(cities))
	for i := range cities {
		views = append(views, newCityView(&cities[i]))
	}
	return views, nil
}

// CreateCity adds a city under a country
func (s *Service) CreateCity(ctx context.Context, input CityInput) (*CityView, error) {
	if _, err := s.countries.FindByID(ctx, input.CountryID); err != nil {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country not found")
	}
	city, err := taxonomy.NewCity(input.CountryID, input.Name, input.Slug)
	if err != nil {
		return nil, err
	}
	city.Image = input.Image

	if existing, err := s.cities.FindBySlug(ctx, city.CountryID, city.Slug); err == nil && existing != nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A city with this slug already exists in the country")
	}

	if err := s.cities.Save(ctx, city); err != nil {
		s.logger.Error("Failed to save city", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create city")
	}

	s.logger.Info("City created", zap.String("slug", city.Slug))
	view := newCityView(city)
	return &view, nil
}

// UpdateCity edits a city's name and image; slug and country stay fixed
func (s *Service) UpdateCity(ctx context.Context, id uuid.UUID, input CityInput) (*CityView, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	city.Name = input.Name
	city.Image = input.Image
	city.Touch()

	if err := s.cities.Save(ctx, city); err != nil {
		s.logger.Error("Failed to update city", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update city")
	}
	view := newCityView(city)
	return &view, nil
}

// DeleteCity removes a city that has no active companies
func (s *Service) DeleteCity(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, taxonomy.KindCity, id, func() error {
		return s.cities.Delete(ctx, id)
	})
}

// ListSubAreas returns the sub-areas of a city
func (s *Service) ListSubAreas(ctx context.Context, cityID uuid.UUID) ([]SubAreaView, error) {
	areas, err := s.subAreas.FindByCity(ctx, cityID)
	if err != nil {
		s.logger.Error("Failed to list sub-areas", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sub-areas")
	}
	views := make([]SubAreaView, 0, len(areas))
	for i := range areas {
		views = append(views, newSubAreaView(&areas[i]))
	}
	return views, nil
}

// CreateSubArea adds a sub-area under a city
func (s *Service) CreateSubArea(ctx context.Context, input SubAreaInput) (*SubAreaView, error) {
	if _, err := s.cities.FindByID(ctx, input.CityID); err != nil {
		return nil, shared.NewDomainError("INVALID_CITY", "City not found")
	}
	area, err := taxonomy.NewSubArea(input.CityID, input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	if existing, err := s.subAreas.FindBySlug(ctx, area.CityID, area.Slug); err == nil && existing != nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A sub-area with this slug already exists in the city")
	}

	if err := s.subAreas.Save(ctx, area); err != nil {
		s.logger.Error("Failed to save sub-area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create sub-area")
	}
	view := newSubAreaView(area)
	return &view, nil
}

// UpdateSubArea edits a sub-area's name
func (s *Service) UpdateSubArea(ctx context.Context, id uuid.UUID, input SubAreaInput) (*SubAreaView, error) {
	area, err := s.subAreas.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	area.Name = input.Name
	area.Touch()

	if err := s.subAreas.Save(ctx, area); err != nil {
		s.logger.Error("Failed to update sub-area", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update sub-area")
	}
	view := newSubAreaView(area)
	return &view, nil
}

// DeleteSubArea removes a sub-area that has no active companies
func (s *Service) DeleteSubArea(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, taxonomy.KindSubArea, id, func() error {
		return s.subAreas.Delete(ctx, id)
	})
}

// ListCategories returns all categories ordered by name
func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = shared.MaxPageSize
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	categories, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, newCategoryView(&categories[i]))
	}
	return views, nil
}

// GetCategoryBySlug resolves a category from its URL slug
func (s *Service) GetCategoryBySlug(ctx context.Context, categorySlug string) (*CategoryView, error) {
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	view := newCategoryView(category)
	return &view, nil
}

// CreateCategory adds a category
func (s *Service) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryView, error) {
	category, err := taxonomy.NewCategory(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}
	category.Icon = input.Icon
	category.Description = input.Description

	exists, err := s.categories.ExistsBySlug(ctx, category.Slug)
	if err != nil {
		s.logger.Error("Failed to check category slug", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}
	if exists {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A category with this slug already exists")
	}

	if err := s.categories.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	s.logger.Info("Category created", zap.String("slug", category.Slug))
	view := newCategoryView(category)
	return &view, nil
}

// UpdateCategory edits a category; the slug stays fixed so URLs do not break
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryView, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	category.Name = input.Name
	category.Icon = input.Icon
	category.Description = input.Description
	category.Touch()

	if err := s.categories.Save(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}
	view := newCategoryView(category)
	return &view, nil
}

// DeleteCategory removes a category that has no active companies
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, taxonomy.KindCategory, id, func() error {
		return s.categories.Delete(ctx, id)
	})
}

// ListSubCategories returns the sub-categories of a category
func (s *Service) ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]SubCategoryView, error) {
	subs, err := s.subCategories.FindByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list sub-categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sub-categories")
	}
	views := make([]SubCategoryView, 0, len(subs))
	for i := range subs {
		views = append(views, newSubCategoryView(&subs[i]))
	}
	return views, nil
}

// CreateSubCategory adds a sub-category under a category
func (s *Service) CreateSubCategory(ctx context.Context, input SubCategoryInput) (*SubCategoryView, error) {
	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	}
	sub, err := taxonomy.NewSubCategory(input.CategoryID, input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	if existing, err := s.subCategories.FindBySlug(ctx, sub.CategoryID, sub.Slug); err == nil && existing != nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A sub-category with this slug already exists in the category")
	}

	if err := s.subCategories.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to save sub-category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create sub-category")
	}
	view := newSubCategoryView(sub)
	return &view, nil
}

// UpdateSubCategory edits a sub-category's name
func (s *Service) UpdateSubCategory(ctx context.Context, id uuid.UUID, input SubCategoryInput) (*SubCategoryView, error) {
	sub, err := s.subCategories.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	sub.Name = input.Name
	sub.Touch()

	if err := s.subCategories.Save(ctx, sub); err != nil {
		s.logger.Error("Failed to update sub-category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update sub-category")
	}
	view := newSubCategoryView(sub)
	return &view, nil
}

// DeleteSubCategory removes a sub-category that has no active companies
func (s *Service) DeleteSubCategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, taxonomy.KindSubCategory, id, func() error {
		return s.subCategories.Delete(ctx, id)
	})
}

// RefreshCounts recomputes all denormalized company counters. Exposed for
// the admin endpoint and run periodically by the scheduler.
func (s *Service) RefreshCounts(ctx context.Context) error {
	if err := s.refresher.RefreshCompanyCounts(ctx); err != nil {
		s.logger.Error("Failed to refresh company counts", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh company counts")
	}
	s.logger.Info("Company counts refreshed")
	return nil
}

func (s *Service) deleteGuarded(ctx context.Context, kind taxonomy.Kind, id uuid.UUID, del func() error) error {
	count, err := s.companies.CountActiveByTaxonomy(ctx, string(kind), id)
	if err != nil {
		s.logger.Error("Failed to count companies before delete",
			zap.String("kind", string(kind)), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete")
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE",
			fmt.Sprintf("Cannot delete while %d active companies are assigned to it", count))
	}
	if err := del(); err != nil {
		if err == shared.ErrNotFound {
			return err
		}
		s.logger.Error("Failed to delete taxonomy node",
			zap.String("kind", string(kind)), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete")
	}
	s.logger.Info("Taxonomy node deleted",
		zap.String("kind", string(kind)),
		zap.String("id", id.String()))
	return nil
}
