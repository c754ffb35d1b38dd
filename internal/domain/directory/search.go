package directory

import "github.com/morabaat/backend/internal/domain/shared"

// SortBy selects the ordering of a company search. Every ordering carries a
// stable id tie-break so pagination stays deterministic across pages.
type SortBy string

const (
	SortByRating       SortBy = "rating"
	SortByReviewsCount SortBy = "reviews_count"
	SortByCreatedAt    SortBy = "created_at"
	SortByName         SortBy = "name"
)

// IsValid checks if the sort key is supported
func (s SortBy) IsValid() bool {
	switch s {
	case SortByRating, SortByReviewsCount, SortByCreatedAt, SortByName:
		return true
	}
	return false
}

// SearchFilter is the flat filter object for the company search. Every
// present field narrows an AND-conjunction of predicates.
type SearchFilter struct {
	Query           string
	CountryCode     string
	CitySlug        string
	SubAreaSlug     string
	CategorySlug    string
	SubCategorySlug string
	MinRating       *float64
	Verified        *bool
	Featured        *bool
	HasWebsite      *bool
	HasPhone        *bool
	HasEmail        *bool
	HasImages       *bool
	HasWorkingHours *bool
	SortBy          SortBy
	Page            int
	Limit           int
}

// Normalize clamps pagination and fills sort defaults. Limit clamps into
// [1, MaxPageSize]; zero means 1, not unbounded.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > shared.MaxPageSize {
		f.Limit = shared.MaxPageSize
	}
	if !f.SortBy.IsValid() {
		f.SortBy = SortByRating
	}
}

// Offset returns the row offset for the current page
func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
