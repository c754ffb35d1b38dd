package directory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Company is the central directory listing. Rating and ReviewsCount are
// denormalized aggregates over the company's approved reviews and must be
// recomputed on every review mutation, never adjusted incrementally.
type Company struct {
	shared.BaseEntity
	Slug          string
	Name          string
	Description   string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	CountryID     uuid.UUID
	CityID        uuid.UUID
	SubAreaID     *uuid.UUID
	Phone         string
	Email         string
	Website       string
	Address       string
	Latitude      *float64
	Longitude     *float64
	LogoImage     string
	CoverImage    string
	Gallery       []string
	Services      []string
	Rating        decimal.Decimal
	ReviewsCount  int
	IsActive      bool
	IsVerified    bool
	IsFeatured    bool
}

// NewCompanyInput carries the required fields for creating a company
type NewCompanyInput struct {
	Name       string
	CategoryID uuid.UUID
	CountryID  uuid.UUID
	CityID     uuid.UUID
}

// NewCompany creates an active, unverified company with a slug derived from
// its name.
func NewCompany(in NewCompanyInput) (*Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if in.CategoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Company requires a category")
	}
	if in.CountryID == uuid.Nil || in.CityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Company requires a country and city")
	}

	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Slug:       slug.Make(name),
		Name:       name,
		CategoryID: in.CategoryID,
		CountryID:  in.CountryID,
		CityID:     in.CityID,
		Rating:     decimal.Zero,
		IsActive:   true,
	}, nil
}

// ApplyRating replaces the review aggregate. The rating is kept at one
// decimal place, matching display logic.
func (c *Company) ApplyRating(avg decimal.Decimal, count int) {
	c.Rating = avg.Round(1)
	c.ReviewsCount = count
	c.Touch()
}

// SetVerified toggles the verified badge
func (c *Company) SetVerified(verified bool) {
	c.IsVerified = verified
	c.Touch()
}

// SetFeatured toggles the featured flag
func (c *Company) SetFeatured(featured bool) {
	c.IsFeatured = featured
	c.Touch()
}

// SetActive toggles the soft-disable flag
func (c *Company) SetActive(active bool) {
	c.IsActive = active
	c.Touch()
}

// HasImages reports whether the company has any image attached
func (c *Company) HasImages() bool {
	return c.LogoImage != "" || c.CoverImage != "" || len(c.Gallery) > 0
}

// Rename changes the company name without reslugging; slugs are stable once
// published.
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	c.Name = name
	c.Touch()
	return nil
}
