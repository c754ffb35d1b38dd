package models

import (
	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// CountryModel is the persistence model for the Country domain entity
type CountryModel struct {
	BaseModel
	Code           string `gorm:"type:varchar(8);not null;uniqueIndex"`
	Name           string `gorm:"type:varchar(255);not null"`
	Flag           string `gorm:"type:varchar(500)"`
	CompaniesCount int    `gorm:"not null;default:0"`
}

func (CountryModel) TableName() string { return "countries" }

// ToDomain converts the persistence model to a domain Country
func (m *CountryModel) ToDomain() *taxonomy.Country {
	return &taxonomy.Country{
		BaseEntity:     m.BaseModel.ToDomain(),
		Code:           m.Code,
		Name:           m.Name,
		Flag:           m.Flag,
		CompaniesCount: m.CompaniesCount,
	}
}

// FromDomain populates the persistence model from a domain Country
func (m *CountryModel) FromDomain(c *taxonomy.Country) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.Flag = c.Flag
	m.CompaniesCount = c.CompaniesCount
}

// CityModel is the persistence model for the City domain entity
type CityModel struct {
	BaseModel
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_cities_country_slug"`
	Name           string    `gorm:"type:varchar(255);not null"`
	CountryID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cities_country_slug;index"`
	Image          string    `gorm:"type:varchar(500)"`
	CompaniesCount int       `gorm:"not null;default:0"`
}

func (CityModel) TableName() string { return "cities" }

// ToDomain converts the persistence model to a domain City
func (m *CityModel) ToDomain() *taxonomy.City {
	return &taxonomy.City{
		BaseEntity:     m.BaseModel.ToDomain(),
		Slug:           m.Slug,
		Name:           m.Name,
		CountryID:      m.CountryID,
		Image:          m.Image,
		CompaniesCount: m.CompaniesCount,
	}
}

// FromDomain populates the persistence model from a domain City
func (m *CityModel) FromDomain(c *taxonomy.City) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Slug = c.Slug
	m.Name = c.Name
	m.CountryID = c.CountryID
	m.Image = c.Image
	m.CompaniesCount = c.CompaniesCount
}

// SubAreaModel is the persistence model for the SubArea domain entity
type SubAreaModel struct {
	BaseModel
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_sub_areas_city_slug"`
	Name           string    `gorm:"type:varchar(255);not null"`
	CityID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_areas_city_slug;index"`
	CompaniesCount int       `gorm:"not null;default:0"`
}

func (SubAreaModel) TableName() string { return "sub_areas" }

// ToDomain converts the persistence model to a domain SubArea
func (m *SubAreaModel) ToDomain() *taxonomy.SubArea {
	return &taxonomy.SubArea{
		BaseEntity:     m.BaseModel.ToDomain(),
		Slug:           m.Slug,
		Name:           m.Name,
		CityID:         m.CityID,
		CompaniesCount: m.CompaniesCount,
	}
}

// FromDomain populates the persistence model from a domain SubArea
func (m *SubAreaModel) FromDomain(s *taxonomy.SubArea) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Slug = s.Slug
	m.Name = s.Name
	m.CityID = s.CityID
	m.CompaniesCount = s.CompaniesCount
}

// CategoryModel is the persistence model for the Category domain entity
type CategoryModel struct {
	BaseModel
	Slug           string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name           string `gorm:"type:varchar(255);not null"`
	Icon           string `gorm:"type:varchar(500)"`
	Description    string `gorm:"type:text"`
	CompaniesCount int    `gorm:"not null;default:0"`
}

func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *taxonomy.Category {
	return &taxonomy.Category{
		BaseEntity:     m.BaseModel.ToDomain(),
		Slug:           m.Slug,
		Name:           m.Name,
		Icon:           m.Icon,
		Description:    m.Description,
		CompaniesCount: m.CompaniesCount,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *taxonomy.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Slug = c.Slug
	m.Name = c.Name
	m.Icon = c.Icon
	m.Description = c.Description
	m.CompaniesCount = c.CompaniesCount
}

// SubCategoryModel is the persistence model for the SubCategory domain entity
type SubCategoryModel struct {
	BaseModel
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_sub_categories_cat_slug"`
	Name           string    `gorm:"type:varchar(255);not null"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_categories_cat_slug;index"`
	CompaniesCount int       `gorm:"not null;default:0"`
}

func (SubCategoryModel) TableName() string { return "sub_categories" }

// ToDomain converts the persistence model to a domain SubCategory
func (m *SubCategoryModel) ToDomain() *taxonomy.SubCategory {
	return &taxonomy.SubCategory{
		BaseEntity:     m.BaseModel.ToDomain(),
		Slug:           m.Slug,
		Name:           m.Name,
		CategoryID:     m.CategoryID,
		CompaniesCount: m.CompaniesCount,
	}
}

// FromDomain populates the persistence model from a domain SubCategory
func (m *SubCategoryModel) FromDomain(s *taxonomy.SubCategory) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Slug = s.Slug
	m.Name = s.Name
	m.CategoryID = s.CategoryID
	m.CompaniesCount = s.CompaniesCount
}
