package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morabaat/backend/internal/domain/directory"
	"github.com/morabaat/backend/internal/domain/seo"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// Meta is the resolved metadata for one page. Every field is final; the
// per-field fallback to defaults has already happened.
type Meta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"og_image,omitempty"`
	NoIndex     bool     `json:"no_index"`
}

// OverrideInput creates or updates an override. Empty fields keep falling
// back to page defaults at resolve time.
type OverrideInput struct {
	Title       string   `json:"title" binding:"omitempty,max=200"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Keywords    []string `json:"keywords" binding:"omitempty,max=30"`
	OGImage     string   `json:"og_image" binding:"omitempty,url,max=500"`
	NoIndex     bool     `json:"no_index"`
}

// OverrideView is the API shape of an override
type OverrideView struct {
	ID          uuid.UUID  `json:"id"`
	Path        string     `json:"path,omitempty"`
	TargetType  string     `json:"target_type"`
	TargetID    *uuid.UUID `json:"target_id,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	OGImage     string     `json:"og_image,omitempty"`
	NoIndex     bool       `json:"no_index"`
}

// NewOverrideView maps an override to its API shape
func NewOverrideView(o *seo.Override) OverrideView {
	return OverrideView{
		ID:          o.ID,
		Path:        o.Path,
		TargetType:  string(o.TargetType),
		TargetID:    o.TargetID,
		Title:       o.Title,
		Description: o.Description,
		Keywords:    o.Keywords,
		OGImage:     o.OGImage,
		NoIndex:     o.NoIndex,
	}
}

// Service resolves page metadata and renders the crawler surfaces
type Service struct {
	overrides  seo.Repository
	companies  directory.CompanyRepository
	categories taxonomy.CategoryRepository
	cities     taxonomy.CityRepository
	logger     *zap.Logger
}

// NewService creates the SEO service
func NewService(
	overrides seo.Repository,
	companies directory.CompanyRepository,
	categories taxonomy.CategoryRepository,
	cities taxonomy.CityRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		overrides:  overrides,
		companies:  companies,
		categories: categories,
		cities:     cities,
		logger:     logger,
	}
}

// Resolve merges an override into the caller's defaults field by field. Path
// overrides win over target overrides; a missing override leaves the defaults
// untouched. Keywords are generated when neither side sets them.
func (s *Service) Resolve(ctx context.Context, path string, targetType seo.TargetType, targetID *uuid.UUID, defaults Meta) Meta {
	override, err := s.overrides.FindByPath(ctx, path)
	if err != nil && targetType != "" && targetID != nil {
		override, err = s.overrides.FindByTarget(ctx, targetType, *targetID)
	}

	result := defaults
	if err == nil && override != nil {
		if override.Title != "" {
			result.Title = override.Title
		}
		if override.Description != "" {
			result.Description = override.Description
		}
		if len(override.Keywords) > 0 {
			result.Keywords = override.Keywords
		}
		if override.OGImage != "" {
			result.OGImage = override.OGImage
		}
		result.NoIndex = override.NoIndex
	}
	result.Keywords = seo.GenerateKeywords(result.Title, result.Keywords, path)
	return result
}

// UpsertPathOverride creates or replaces the override for one path
func (s *Service) UpsertPathOverride(ctx context.Context, path string, input OverrideInput) (*OverrideView, error) {
	override, err := s.overrides.FindByPath(ctx, path)
	if err != nil {
		if override, err = seo.NewPathOverride(path); err != nil {
			return nil, err
		}
	}
	return s.saveOverride(ctx, override, input)
}

// UpsertTargetOverride creates or replaces the override for one entity
func (s *Service) UpsertTargetOverride(ctx context.Context, targetType seo.TargetType, targetID uuid.UUID, input OverrideInput) (*OverrideView, error) {
	override, err := s.overrides.FindByTarget(ctx, targetType, targetID)
	if err != nil {
		if override, err = seo.NewTargetOverride(targetType, targetID); err != nil {
			return nil, err
		}
	}
	return s.saveOverride(ctx, override, input)
}

func (s *Service) saveOverride(ctx context.Context, override *seo.Override, input OverrideInput) (*OverrideView, error) {
	override.Title = strings.TrimSpace(input.Title)
	override.Description = strings.TrimSpace(input.Description)
	override.Keywords = input.Keywords
	override.OGImage = input.OGImage
	override.NoIndex = input.NoIndex
	override.Touch()
	if err := s.overrides.Save(ctx, override); err != nil {
		s.logger.Error("Failed to save SEO override", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save override")
	}
	view := NewOverrideView(override)
	return &view, nil
}

// List returns all overrides for the back office
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OverrideView], error) {
	filter.Normalize()
	overrides, err := s.overrides.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list SEO overrides", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list overrides")
	}
	total, err := s.overrides.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list overrides")
	}
	views := make([]OverrideView, 0, len(overrides))
	for i := range overrides {
		views = append(views, NewOverrideView(&overrides[i]))
	}
	result := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes an override; resolution falls back to defaults
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.overrides.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	if err := s.overrides.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete SEO override", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete override")
	}
	return nil
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml: the landing page, category and city listing
// pages and every active company.
func (s *Service) Sitemap(ctx context.Context, baseURL string) ([]byte, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: baseURL + "/", ChangeFreq: "daily", Priority: 1.0},
			{Loc: baseURL + "/search", ChangeFreq: "daily", Priority: 0.8},
		},
	}

	if err := pageAll(ctx, s.categories, func(c *taxonomy.Category) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/categories/%s", baseURL, c.Slug),
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}); err != nil {
		s.logger.Error("Failed to load categories for sitemap", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sitemap")
	}

	if err := pageAll(ctx, s.cities, func(c *taxonomy.City) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/cities/%s", baseURL, c.Slug),
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}); err != nil {
		s.logger.Error("Failed to load cities for sitemap", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sitemap")
	}

	if err := pageAll(ctx, s.companies, func(c *directory.Company) {
		if !c.IsActive {
			return
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/companies/%s", baseURL, c.Slug),
			LastMod:    c.UpdatedAt.Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   0.5,
		})
	}); err != nil {
		s.logger.Error("Failed to load companies for sitemap", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sitemap")
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sitemap")
	}
	return append([]byte(xml.Header), body...), nil
}

// Robots renders robots.txt pointing crawlers at the sitemap
func (s *Service) Robots(baseURL string) []byte {
	baseURL = strings.TrimRight(baseURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /dashboard/\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + baseURL + "/sitemap.xml\n")
	return []byte(b.String())
}

func pageAll[T any](ctx context.Context, repo shared.Repository[T], visit func(*T)) error {
	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize}
	for {
		page, err := repo.FindAll(ctx, filter)
		if err != nil {
			return err
		}
		for i := range page {
			visit(&page[i])
		}
		if len(page) < filter.PageSize {
			return nil
		}
		filter.Page++
	}
}
