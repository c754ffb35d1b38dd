package taxonomy

import (
	"context"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Kind identifies a taxonomy entity type
type Kind string

const (
	KindCountry     Kind = "country"
	KindCity        Kind = "city"
	KindSubArea     Kind = "sub_area"
	KindCategory    Kind = "category"
	KindSubCategory Kind = "sub_category"
)

// CountryRepository provides access to country storage
type CountryRepository interface {
	shared.Repository[Country]
	FindByCode(ctx context.Context, code string) (*Country, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CityRepository provides access to city storage
type CityRepository interface {
	shared.Repository[City]
	FindBySlug(ctx context.Context, countryID uuid.UUID, slug string) (*City, error)
	FindByCountry(ctx context.Context, countryID uuid.UUID) ([]City, error)
}

// SubAreaRepository provides access to sub-area storage
type SubAreaRepository interface {
	shared.Repository[SubArea]
	FindBySlug(ctx context.Context, cityID uuid.UUID, slug string) (*SubArea, error)
	FindByCity(ctx context.Context, cityID uuid.UUID) ([]SubArea, error)
}

// CategoryRepository provides access to category storage
type CategoryRepository interface {
	shared.Repository[Category]
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// SubCategoryRepository provides access to sub-category storage
type SubCategoryRepository interface {
	shared.Repository[SubCategory]
	FindBySlug(ctx context.Context, categoryID uuid.UUID, slug string) (*SubCategory, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]SubCategory, error)
}

// CountRefresher recomputes the denormalized companies-count columns from the
// current set of active companies. Counts are advisory between refreshes.
type CountRefresher interface {
	RefreshCompanyCounts(ctx context.Context) error
}
