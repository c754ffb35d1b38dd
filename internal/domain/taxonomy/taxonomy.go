package taxonomy

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/morabaat/backend/internal/domain/shared"
)

// Country is a top-level location. Code is the ISO-style short code used in
// public URLs (e.g. "sy", "ae").
type Country struct {
	shared.BaseEntity
	Code           string
	Name           string
	Flag           string
	CompaniesCount int
}

// NewCountry creates a new country
func NewCountry(code, name string) (*Country, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Country code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Country name cannot be empty")
	}
	return &Country{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       strings.TrimSpace(name),
	}, nil
}

// City belongs to a Country
type City struct {
	shared.BaseEntity
	Slug           string
	Name           string
	CountryID      uuid.UUID
	Image          string
	CompaniesCount int
}

// NewCity creates a new city under a country. The slug is derived from the
// name when not supplied.
func NewCity(countryID uuid.UUID, name, citySlug string) (*City, error) {
	if countryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "City requires a country")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "City name cannot be empty")
	}
	if citySlug == "" {
		citySlug = slug.Make(name)
	}
	return &City{
		BaseEntity: shared.NewBaseEntity(),
		Slug:       citySlug,
		Name:       name,
		CountryID:  countryID,
	}, nil
}

// SubArea is a neighbourhood or district inside a City
type SubArea struct {
	shared.BaseEntity
	Slug           string
	Name           string
	CityID         uuid.UUID
	CompaniesCount int
}

// NewSubArea creates a new sub-area under a city
func NewSubArea(cityID uuid.UUID, name, areaSlug string) (*SubArea, error) {
	if cityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CITY", "Sub-area requires a city")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-area name cannot be empty")
	}
	if areaSlug == "" {
		areaSlug = slug.Make(name)
	}
	return &SubArea{
		BaseEntity: shared.NewBaseEntity(),
		Slug:       areaSlug,
		Name:       name,
		CityID:     cityID,
	}, nil
}

// Category is a top-level business classification
type Category struct {
	shared.BaseEntity
	Slug           string
	Name           string
	Icon           string
	Description    string
	CompaniesCount int
}

// NewCategory creates a new category
func NewCategory(name, categorySlug string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Slug:       categorySlug,
		Name:       name,
	}, nil
}

// SubCategory is a second-level classification under a Category
type SubCategory struct {
	shared.BaseEntity
	Slug           string
	Name           string
	CategoryID     uuid.UUID
	CompaniesCount int
}

// NewSubCategory creates a new sub-category under a category
func NewSubCategory(categoryID uuid.UUID, name, subSlug string) (*SubCategory, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Sub-category requires a category")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-category name cannot be empty")
	}
	if subSlug == "" {
		subSlug = slug.Make(name)
	}
	return &SubCategory{
		BaseEntity: shared.NewBaseEntity(),
		Slug:       subSlug,
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
