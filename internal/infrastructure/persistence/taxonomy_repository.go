package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

var taxonomySortColumns = map[string]bool{
	"created_at":      true,
	"name":            true,
	"companies_count": true,
}

// ---------------------------------------------------------------------------
// Country

// GormCountryRepository implements taxonomy.CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a country by its short code
func (r *GormCountryRepository) FindByCode(ctx context.Context, code string) (*taxonomy.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).
		First(&model, "code = ?", strings.ToLower(strings.TrimSpace(code))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks if a country with the code exists
func (r *GormCountryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CountryModel{}).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		Count(&count).Error
	return count > 0, err
}

// FindAll finds countries matching the filter
func (r *GormCountryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Country, error) {
	query := r.db.WithContext(ctx).Model(&models.CountryModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = applyPagination(applyOrder(query, filter, taxonomySortColumns), filter)

	var rows []models.CountryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.Country, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *taxonomy.Country) error {
	var model models.CountryModel
	model.FromDomain(country)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a country
func (r *GormCountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CountryModel{}, id)
}

// Count counts countries matching the filter
func (r *GormCountryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CountryModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

var _ taxonomy.CountryRepository = (*GormCountryRepository)(nil)

// ---------------------------------------------------------------------------
// City

// GormCityRepository implements taxonomy.CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a city by slug within a country
func (r *GormCityRepository) FindBySlug(ctx context.Context, countryID uuid.UUID, citySlug string) (*taxonomy.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).
		Where("country_id = ? AND slug = ?", countryID, citySlug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCountry finds all cities of a country ordered by name
func (r *GormCityRepository) FindByCountry(ctx context.Context, countryID uuid.UUID) ([]taxonomy.City, error) {
	var rows []models.CityModel
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.City, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// FindAll finds cities matching the filter
func (r *GormCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.City, error) {
	query := r.db.WithContext(ctx).Model(&models.CityModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if countryID, ok := filter.Filters["country_id"]; ok {
		query = query.Where("country_id = ?", countryID)
	}
	query = applyPagination(applyOrder(query, filter, taxonomySortColumns), filter)

	var rows []models.CityModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.City, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *taxonomy.City) error {
	var model models.CityModel
	model.FromDomain(city)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CityModel{}, id)
}

// Count counts cities matching the filter
func (r *GormCityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CityModel{})
	if countryID, ok := filter.Filters["country_id"]; ok {
		query = query.Where("country_id = ?", countryID)
	}
	err := query.Count(&count).Error
	return count, err
}

var _ taxonomy.CityRepository = (*GormCityRepository)(nil)

// ---------------------------------------------------------------------------
// SubArea

// GormSubAreaRepository implements taxonomy.SubAreaRepository using GORM
type GormSubAreaRepository struct {
	db *gorm.DB
}

// NewGormSubAreaRepository creates a new GormSubAreaRepository
func NewGormSubAreaRepository(db *gorm.DB) *GormSubAreaRepository {
	return &GormSubAreaRepository{db: db}
}

// FindByID finds a sub-area by ID
func (r *GormSubAreaRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.SubArea, error) {
	var model models.SubAreaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a sub-area by slug within a city
func (r *GormSubAreaRepository) FindBySlug(ctx context.Context, cityID uuid.UUID, areaSlug string) (*taxonomy.SubArea, error) {
	var model models.SubAreaModel
	if err := r.db.WithContext(ctx).
		Where("city_id = ? AND slug = ?", cityID, areaSlug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCity finds all sub-areas of a city ordered by name
func (r *GormSubAreaRepository) FindByCity(ctx context.Context, cityID uuid.UUID) ([]taxonomy.SubArea, error) {
	var rows []models.SubAreaModel
	if err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.SubArea, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// FindAll finds sub-areas matching the filter
func (r *GormSubAreaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.SubArea, error) {
	query := r.db.WithContext(ctx).Model(&models.SubAreaModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if cityID, ok := filter.Filters["city_id"]; ok {
		query = query.Where("city_id = ?", cityID)
	}
	query = applyPagination(applyOrder(query, filter, taxonomySortColumns), filter)

	var rows []models.SubAreaModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.SubArea, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a sub-area
func (r *GormSubAreaRepository) Save(ctx context.Context, area *taxonomy.SubArea) error {
	var model models.SubAreaModel
	model.FromDomain(area)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a sub-area
func (r *GormSubAreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.SubAreaModel{}, id)
}

// Count counts sub-areas matching the filter
func (r *GormSubAreaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SubAreaModel{})
	if cityID, ok := filter.Filters["city_id"]; ok {
		query = query.Where("city_id = ?", cityID)
	}
	err := query.Count(&count).Error
	return count, err
}

var _ taxonomy.SubAreaRepository = (*GormSubAreaRepository)(nil)

// ---------------------------------------------------------------------------
// Category

// GormCategoryRepository implements taxonomy.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a category by slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, categorySlug string) (*taxonomy.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", categorySlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySlug checks if a category with the slug exists
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, categorySlug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("slug = ?", categorySlug).Count(&count).Error
	return count > 0, err
}

// FindAll finds categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = applyPagination(applyOrder(query, filter, taxonomySortColumns), filter)

	var rows []models.CategoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.Category, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *taxonomy.Category) error {
	var model models.CategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CategoryModel{}, id)
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

var _ taxonomy.CategoryRepository = (*GormCategoryRepository)(nil)

// ---------------------------------------------------------------------------
// SubCategory

// GormSubCategoryRepository implements taxonomy.SubCategoryRepository using GORM
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewGormSubCategoryRepository creates a new GormSubCategoryRepository
func NewGormSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

// FindByID finds a sub-category by ID
func (r *GormSubCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.SubCategory, error) {
	var model models.SubCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a sub-category by slug within a category
func (r *GormSubCategoryRepository) FindBySlug(ctx context.Context, categoryID uuid.UUID, subSlug string) (*taxonomy.SubCategory, error) {
	var model models.SubCategoryModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND slug = ?", categoryID, subSlug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategory finds all sub-categories of a category ordered by name
func (r *GormSubCategoryRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]taxonomy.SubCategory, error) {
	var rows []models.SubCategoryModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.SubCategory, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// FindAll finds sub-categories matching the filter
func (r *GormSubCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]taxonomy.SubCategory, error) {
	query := r.db.WithContext(ctx).Model(&models.SubCategoryModel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	query = applyPagination(applyOrder(query, filter, taxonomySortColumns), filter)

	var rows []models.SubCategoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]taxonomy.SubCategory, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a sub-category
func (r *GormSubCategoryRepository) Save(ctx context.Context, sub *taxonomy.SubCategory) error {
	var model models.SubCategoryModel
	model.FromDomain(sub)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a sub-category
func (r *GormSubCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.SubCategoryModel{}, id)
}

// Count counts sub-categories matching the filter
func (r *GormSubCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SubCategoryModel{})
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.Count(&count).Error
	return count, err
}

var _ taxonomy.SubCategoryRepository = (*GormSubCategoryRepository)(nil)

// ---------------------------------------------------------------------------
// Count refresher

// GormCountRefresher recomputes the denormalized companies_count columns from
// the current set of active companies.
type GormCountRefresher struct {
	db *gorm.DB
}

// NewGormCountRefresher creates a new GormCountRefresher
func NewGormCountRefresher(db *gorm.DB) *GormCountRefresher {
	return &GormCountRefresher{db: db}
}

// RefreshCompanyCounts rewrites every count column in one pass per table
func (r *GormCountRefresher) RefreshCompanyCounts(ctx context.Context) error {
	statements := []string{
		`UPDATE countries SET companies_count = (SELECT COUNT(*) FROM companies WHERE companies.country_id = countries.id AND companies.is_active = ?)`,
		`UPDATE cities SET companies_count = (SELECT COUNT(*) FROM companies WHERE companies.city_id = cities.id AND companies.is_active = ?)`,
		`UPDATE sub_areas SET companies_count = (SELECT COUNT(*) FROM companies WHERE companies.sub_area_id = sub_areas.id AND companies.is_active = ?)`,
		`UPDATE categories SET companies_count = (SELECT COUNT(*) FROM companies WHERE companies.category_id = categories.id AND companies.is_active = ?)`,
		`UPDATE sub_categories SET companies_count = (SELECT COUNT(*) FROM companies WHERE companies.sub_category_id = sub_categories.id AND companies.is_active = ?)`,
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt, true).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ taxonomy.CountRefresher = (*GormCountRefresher)(nil)

// deleteByID deletes one row by primary key, mapping zero rows to ErrNotFound
func deleteByID(db *gorm.DB, model any, id uuid.UUID) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
