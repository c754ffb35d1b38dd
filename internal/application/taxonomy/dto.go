package taxonomy

import (
	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// CountryInput contains input for creating or updating a country
type CountryInput struct {
	Code string `json:"code" binding:"required,min=2,max=5"`
	Name string `json:"name" binding:"required,min=2,max=100"`
	Flag string `json:"flag" binding:"omitempty,max=500"`
}

// CityInput contains input for creating or updating a city
type CityInput struct {
	CountryID uuid.UUID `json:"country_id" binding:"required"`
	Name      string    `json:"name" binding:"required,min=2,max=100"`
	Slug      string    `json:"slug" binding:"omitempty,slugfmt,max=100"`
	Image     string    `json:"image" binding:"omitempty,max=500"`
}

// SubAreaInput contains input for creating or updating a sub-area
type SubAreaInput struct {
	CityID uuid.UUID `json:"city_id" binding:"required"`
	Name   string    `json:"name" binding:"required,min=2,max=100"`
	Slug   string    `json:"slug" binding:"omitempty,slugfmt,max=100"`
}

// CategoryInput contains input for creating or updating a category
type CategoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"omitempty,slugfmt,max=100"`
	Icon        string `json:"icon" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// SubCategoryInput contains input for creating or updating a sub-category
type SubCategoryInput struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Name       string    `json:"name" binding:"required,min=2,max=100"`
	Slug       string    `json:"slug" binding:"omitempty,slugfmt,max=100"`
}

// CountryView is the API shape of a country
type CountryView struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Flag           string    `json:"flag,omitempty"`
	CompaniesCount int       `json:"companies_count"`
}

// CityView is the API shape of a city
type CityView struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	CountryID      uuid.UUID `json:"country_id"`
	Image          string    `json:"image,omitempty"`
	CompaniesCount int       `json:"companies_count"`
}

// SubAreaView is the API shape of a sub-area
type SubAreaView struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	CityID         uuid.UUID `json:"city_id"`
	CompaniesCount int       `json:"companies_count"`
}

// CategoryView is the API shape of a category
type CategoryView struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Icon           string    `json:"icon,omitempty"`
	Description    string    `json:"description,omitempty"`
	CompaniesCount int       `json:"companies_count"`
}

// SubCategoryView is the API shape of a sub-category
type SubCategoryView struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	CategoryID     uuid.UUID `json:"category_id"`
	CompaniesCount int       `json:"companies_count"`
}

func newCountryView(c *taxonomy.Country) CountryView {
	return CountryView{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		Flag:           c.Flag,
		CompaniesCount: c.CompaniesCount,
	}
}

func newCityView(c *taxonomy.City) CityView {
	return CityView{
		ID:             c.ID,
		Slug:           c.Slug,
		Name:           c.Name,
		CountryID:      c.CountryID,
		Image:          c.Image,
		CompaniesCount: c.CompaniesCount,
	}
}

func newSubAreaView(a *taxonomy.SubArea) SubAreaView {
	return SubAreaView{
		ID:             a.ID,
		Slug:           a.Slug,
		Name:           a.Name,
		CityID:         a.CityID,
		CompaniesCount: a.CompaniesCount,
	}
}

func newCategoryView(c *taxonomy.Category) CategoryView {
	return CategoryView{
		ID:             c.ID,
		Slug:           c.Slug,
		Name:           c.Name,
		Icon:           c.Icon,
		Description:    c.Description,
		CompaniesCount: c.CompaniesCount,
	}
}

func newSubCategoryView(c *taxonomy.SubCategory) SubCategoryView {
	return SubCategoryView{
		ID:             c.ID,
		Slug:           c.Slug,
		Name:           c.Name,
		CategoryID:     c.CategoryID,
		CompaniesCount: c.CompaniesCount,
	}
}
