package directory

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/review"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// exportHeaders matches the import column set so an export can be re-imported
var exportHeaders = []string{
	"name", "description", "country", "city", "sub_area",
	"category", "sub_category", "phone", "email", "website",
	"address", "rating", "reviews_count", "verified", "featured", "active",
}

var reviewExportHeaders = []string{
	"company", "rating", "title", "comment", "approved",
	"helpful", "not_helpful", "created_at",
}

// ExportService streams directory data as CSV or JSON for the back office
type ExportService struct {
	companies     directory.CompanyRepository
	reviews       review.Repository
	countries     taxonomy.CountryRepository
	cities        taxonomy.CityRepository
	subAreas      taxonomy.SubAreaRepository
	categories    taxonomy.CategoryRepository
	subCategories taxonomy.SubCategoryRepository
	logger        *zap.Logger
}

// NewExportService creates the export service
func NewExportService(
	companies directory.CompanyRepository,
	reviews review.Repository,
	countries taxonomy.CountryRepository,
	cities taxonomy.CityRepository,
	subAreas taxonomy.SubAreaRepository,
	categories taxonomy.CategoryRepository,
	subCategories taxonomy.SubCategoryRepository,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		companies:     companies,
		reviews:       reviews,
		countries:     countries,
		cities:        cities,
		subAreas:      subAreas,
		categories:    categories,
		subCategories: subCategories,
		logger:        logger,
	}
}

// ExportCompanies writes all companies as CSV. Taxonomy references are
// resolved to names so the file is readable and re-importable.
func (s *ExportService) ExportCompanies(ctx context.Context, actor Actor, w io.Writer) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	names, err := s.taxonomyNames(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}
	exported := 0
	for {
		page, err := s.companies.FindAll(ctx, filter)
		if err != nil {
			s.logger.Error("Failed to page companies for export", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to export companies")
		}
		for i := range page {
			if err := cw.Write(s.record(&page[i], names)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			exported++
		}
		if len(page) < filter.PageSize {
			break
		}
		filter.Page++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	s.logger.Info("Companies exported", zap.Int("count", exported))
	return nil
}

// companyExportRow is the JSON shape of one exported company
type companyExportRow struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Country      string `json:"country"`
	City         string `json:"city"`
	SubArea      string `json:"sub_area,omitempty"`
	Category     string `json:"category"`
	SubCategory  string `json:"sub_category,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`
	Address      string `json:"address,omitempty"`
	Rating       string `json:"rating"`
	ReviewsCount int    `json:"reviews_count"`
	Verified     bool   `json:"verified"`
	Featured     bool   `json:"featured"`
	Active       bool   `json:"active"`
}

// ExportCompaniesJSON writes all companies as a JSON array
func (s *ExportService) ExportCompaniesJSON(ctx context.Context, actor Actor, w io.Writer) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	names, err := s.taxonomyNames(ctx)
	if err != nil {
		return err
	}
	return writeJSONArray(w, func(write func(any) error) error {
		return eachRow(ctx, s.companies, func(c *directory.Company) error {
			return write(companyExportRow{
				Name:         c.Name,
				Slug:         c.Slug,
				Description:  c.Description,
				Country:      names[c.CountryID],
				City:         names[c.CityID],
				SubArea:      optionalName(c.SubAreaID, names),
				Category:     names[c.CategoryID],
				SubCategory:  optionalName(c.SubCategoryID, names),
				Phone:        c.Phone,
				Email:        c.Email,
				Website:      c.Website,
				Address:      c.Address,
				Rating:       c.Rating.StringFixed(1),
				ReviewsCount: c.ReviewsCount,
				Verified:     c.IsVerified,
				Featured:     c.IsFeatured,
				Active:       c.IsActive,
			})
		})
	})
}

// reviewExportRow is the JSON shape of one exported review
type reviewExportRow struct {
	Company    string `json:"company"`
	Rating     int    `json:"rating"`
	Title      string `json:"title,omitempty"`
	Comment    string `json:"comment"`
	Approved   bool   `json:"approved"`
	Helpful    int    `json:"helpful"`
	NotHelpful int    `json:"not_helpful"`
	CreatedAt  string `json:"created_at"`
}

// ExportReviewsCSV writes all reviews as CSV, with company names resolved
func (s *ExportService) ExportReviewsCSV(ctx context.Context, actor Actor, w io.Writer) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	companyNames, err := s.companyNames(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(reviewExportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	err = eachRow(ctx, s.reviews, func(r *review.Review) error {
		row := newReviewExportRow(r, companyNames)
		return cw.Write([]string{
			row.Company, strconv.Itoa(row.Rating), row.Title, row.Comment,
			strconv.FormatBool(row.Approved), strconv.Itoa(row.Helpful),
			strconv.Itoa(row.NotHelpful), row.CreatedAt,
		})
	})
	if err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// ExportReviewsJSON writes all reviews as a JSON array
func (s *ExportService) ExportReviewsJSON(ctx context.Context, actor Actor, w io.Writer) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}
	companyNames, err := s.companyNames(ctx)
	if err != nil {
		return err
	}
	return writeJSONArray(w, func(write func(any) error) error {
		return eachRow(ctx, s.reviews, func(r *review.Review) error {
			return write(newReviewExportRow(r, companyNames))
		})
	})
}

func newReviewExportRow(r *review.Review, companyNames map[uuid.UUID]string) reviewExportRow {
	return reviewExportRow{
		Company:    companyNames[r.CompanyID],
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		Approved:   r.IsApproved,
		Helpful:    r.HelpfulCount,
		NotHelpful: r.NotHelpfulCount,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *ExportService) companyNames(ctx context.Context) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	err := eachRow(ctx, s.companies, func(c *directory.Company) error {
		names[c.ID] = c.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// eachRow walks a repository in creation order, one page at a time
func eachRow[T any](ctx context.Context, repo shared.Repository[T], visit func(*T) error) error {
	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}
	for {
		page, err := repo.FindAll(ctx, filter)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to page rows for export")
		}
		for i := range page {
			if err := visit(&page[i]); err != nil {
				return err
			}
		}
		if len(page) < filter.PageSize {
			return nil
		}
		filter.Page++
	}
}

// writeJSONArray streams a JSON array without buffering the whole set
func writeJSONArray(w io.Writer, fill func(write func(any) error) error) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	first := true
	err := fill(func(v any) error {
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		return enc.Encode(v)
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]")
	return err
}

func (s *ExportService) record(c *directory.Company, names map[uuid.UUID]string) []string {
	return []string{
		c.Name,
		c.Description,
		names[c.CountryID],
		names[c.CityID],
		optionalName(c.SubAreaID, names),
		names[c.CategoryID],
		optionalName(c.SubCategoryID, names),
		c.Phone,
		c.Email,
		c.Website,
		c.Address,
		c.Rating.StringFixed(1),
		strconv.Itoa(c.ReviewsCount),
		strconv.FormatBool(c.IsVerified),
		strconv.FormatBool(c.IsFeatured),
		strconv.FormatBool(c.IsActive),
	}
}

func optionalName(id *uuid.UUID, names map[uuid.UUID]string) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

// taxonomyNames loads every taxonomy row into one id-to-name lookup
func (s *ExportService) taxonomyNames(ctx context.Context) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)

	if err := collectNames(ctx, names, s.countries, func(c *taxonomy.Country) (uuid.UUID, string) { return c.ID, c.Name }); err != nil {
		return nil, err
	}
	if err := collectNames(ctx, names, s.cities, func(c *taxonomy.City) (uuid.UUID, string) { return c.ID, c.Name }); err != nil {
		return nil, err
	}
	if err := collectNames(ctx, names, s.subAreas, func(a *taxonomy.SubArea) (uuid.UUID, string) { return a.ID, a.Name }); err != nil {
		return nil, err
	}
	if err := collectNames(ctx, names, s.categories, func(c *taxonomy.Category) (uuid.UUID, string) { return c.ID, c.Name }); err != nil {
		return nil, err
	}
	if err := collectNames(ctx, names, s.subCategories, func(c *taxonomy.SubCategory) (uuid.UUID, string) { return c.ID, c.Name }); err != nil {
		return nil, err
	}
	return names, nil
}

func collectNames[T any](ctx context.Context, into map[uuid.UUID]string, repo shared.Repository[T], key func(*T) (uuid.UUID, string)) error {
	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize}
	for {
		page, err := repo.FindAll(ctx, filter)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to load taxonomy for export")
		}
		for i := range page {
			id, name := key(&page[i])
			into[id] = name
		}
		if len(page) < filter.PageSize {
			return nil
		}
		filter.Page++
	}
}
