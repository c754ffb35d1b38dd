package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

var companySortColumns = map[string]bool{
	"created_at":    true,
	"name":          true,
	"rating":        true,
	"reviews_count": true,
}

// GormCompanyRepository implements directory.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a company by its public slug
func (r *GormCompanyRepository) FindBySlug(ctx context.Context, companySlug string) (*directory.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "slug = ?", companySlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySlug checks if a company with the slug exists
func (r *GormCompanyRepository) ExistsBySlug(ctx context.Context, companySlug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("slug = ?", companySlug).Count(&count).Error
	return count > 0, err
}

// FindAll finds companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Company, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	query = applyPagination(applyOrder(query, filter, companySortColumns), filter)

	var rows []models.CompanyModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCompanySlice(rows), nil
}

// Search runs the taxonomy-filtered directory query. All present filter
// fields narrow the predicate set; the total is an independent count under
// the same predicates, never len() of the page.
func (r *GormCompanyRepository) Search(ctx context.Context, filter directory.SearchFilter) ([]directory.Company, int64, error) {
	filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("companies.is_active = ?", true)

	if filter.Query != "" {
		// LOWER on both sides keeps the match case-insensitive on postgres
		// and sqlite alike
		pattern := "%" + filter.Query + "%"
		query = query.Where("LOWER(companies.name) LIKE LOWER(?) OR LOWER(companies.description) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.CountryCode != "" {
		query = query.Where("companies.country_id IN (?)",
			r.db.Model(&models.CountryModel{}).Select("id").Where("code = ?", filter.CountryCode))
	}
	if filter.CitySlug != "" {
		query = query.Where("companies.city_id IN (?)",
			r.db.Model(&models.CityModel{}).Select("id").Where("slug = ?", filter.CitySlug))
	}
	if filter.SubAreaSlug != "" {
		query = query.Where("companies.sub_area_id IN (?)",
			r.db.Model(&models.SubAreaModel{}).Select("id").Where("slug = ?", filter.SubAreaSlug))
	}
	if filter.CategorySlug != "" {
		query = query.Where("companies.category_id IN (?)",
			r.db.Model(&models.CategoryModel{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.SubCategorySlug != "" {
		query = query.Where("companies.sub_category_id IN (?)",
			r.db.Model(&models.SubCategoryModel{}).Select("id").Where("slug = ?", filter.SubCategorySlug))
	}
	if filter.MinRating != nil {
		query = query.Where("companies.rating >= ?", *filter.MinRating)
	}
	if filter.Verified != nil {
		query = query.Where("companies.is_verified = ?", *filter.Verified)
	}
	if filter.Featured != nil {
		query = query.Where("companies.is_featured = ?", *filter.Featured)
	}
	query = applyPresenceFilter(query, "companies.website", filter.HasWebsite)
	query = applyPresenceFilter(query, "companies.phone", filter.HasPhone)
	query = applyPresenceFilter(query, "companies.email", filter.HasEmail)
	if filter.HasImages != nil {
		cond := `(companies.logo_image <> '' OR companies.cover_image <> '' OR (companies.gallery <> '' AND companies.gallery <> '[]'))`
		if *filter.HasImages {
			query = query.Where(cond)
		} else {
			query = query.Where("NOT " + cond)
		}
	}
	if filter.HasWorkingHours != nil {
		sub := r.db.Model(&models.WorkingHoursModel{}).Select("company_id")
		if *filter.HasWorkingHours {
			query = query.Where("companies.id IN (?)", sub)
		} else {
			query = query.Where("companies.id NOT IN (?)", sub)
		}
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(searchOrderClause(filter.SortBy)).
		Offset(filter.Offset()).
		Limit(filter.Limit)

	var rows []models.CompanyModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toCompanySlice(rows), total, nil
}

// searchOrderClause maps a sort key to its ORDER BY clause. Every ordering
// ends in an id tie-break so pages never overlap.
func searchOrderClause(sortBy directory.SortBy) string {
	switch sortBy {
	case directory.SortByReviewsCount:
		return "companies.reviews_count DESC, companies.id ASC"
	case directory.SortByCreatedAt:
		return "companies.created_at DESC, companies.id ASC"
	case directory.SortByName:
		return "companies.name ASC, companies.id ASC"
	default:
		return "companies.rating DESC, companies.reviews_count DESC, companies.id ASC"
	}
}

// applyPresenceFilter narrows a string column to non-empty or empty
func applyPresenceFilter(query *gorm.DB, column string, want *bool) *gorm.DB {
	if want == nil {
		return query
	}
	if *want {
		return query.Where(column + " <> ''")
	}
	return query.Where(column + " = ''")
}

// CountActiveByTaxonomy counts active companies referencing one taxonomy
// entity. It backs the delete guard for taxonomy entities in use.
func (r *GormCompanyRepository) CountActiveByTaxonomy(ctx context.Context, kind string, id uuid.UUID) (int64, error) {
	var column string
	switch taxonomy.Kind(kind) {
	case taxonomy.KindCountry:
		column = "country_id"
	case taxonomy.KindCity:
		column = "city_id"
	case taxonomy.KindSubArea:
		column = "sub_area_id"
	case taxonomy.KindCategory:
		column = "category_id"
	case taxonomy.KindSubCategory:
		column = "sub_category_id"
	default:
		return 0, shared.NewDomainError("INVALID_TAXONOMY_KIND", "Unknown taxonomy kind: "+kind)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where(column+" = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count, err
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *directory.Company) error {
	var model models.CompanyModel
	model.FromDomain(company)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CompanyModel{}, id)
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CompanyModel{})
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	err := query.Count(&count).Error
	return count, err
}

func toCompanySlice(rows []models.CompanyModel) []directory.Company {
	companies := make([]directory.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, *rows[i].ToDomain())
	}
	return companies
}

var _ directory.CompanyRepository = (*GormCompanyRepository)(nil)
