package bulk

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/domain/taxonomy"
)

// taxonomyLookups is a per-import snapshot of the taxonomy tables. Rows
// reference locations and categories by name, code or slug; loading the
// tables once up front keeps the row loop free of per-row queries.
type taxonomyLookups struct {
	countries     map[string]*taxonomy.Country
	cities        map[uuid.UUID]map[string]*taxonomy.City
	subAreas      map[uuid.UUID]map[string]*taxonomy.SubArea
	categories    map[string]*taxonomy.Category
	subCategories map[uuid.UUID]map[string]*taxonomy.SubCategory
}

func (l *taxonomyLookups) country(value string) *taxonomy.Country {
	return l.countries[normalizeKey(value)]
}

func (l *taxonomyLookups) city(countryID uuid.UUID, value string) *taxonomy.City {
	return l.cities[countryID][normalizeKey(value)]
}

func (l *taxonomyLookups) subArea(cityID uuid.UUID, value string) *taxonomy.SubArea {
	return l.subAreas[cityID][normalizeKey(value)]
}

func (l *taxonomyLookups) category(value string) *taxonomy.Category {
	return l.categories[normalizeKey(value)]
}

func (l *taxonomyLookups) subCategory(categoryID uuid.UUID, value string) *taxonomy.SubCategory {
	return l.subCategories[categoryID][normalizeKey(value)]
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (s *Service) loadLookups(ctx context.Context) (*taxonomyLookups, error) {
	l := &taxonomyLookups{
		countries:     make(map[string]*taxonomy.Country),
		cities:        make(map[uuid.UUID]map[string]*taxonomy.City),
		subAreas:      make(map[uuid.UUID]map[string]*taxonomy.SubArea),
		categories:    make(map[string]*taxonomy.Category),
		subCategories: make(map[uuid.UUID]map[string]*taxonomy.SubCategory),
	}

	err := loadAll(ctx, s.countries, func(c *taxonomy.Country) {
		l.countries[normalizeKey(c.Code)] = c
		l.countries[normalizeKey(c.Name)] = c
	})
	if err != nil {
		return nil, err
	}

	err = loadAll(ctx, s.cities, func(c *taxonomy.City) {
		byKey, ok := l.cities[c.CountryID]
		if !ok {
			byKey = make(map[string]*taxonomy.City)
			l.cities[c.CountryID] = byKey
		}
		byKey[normalizeKey(c.Slug)] = c
		byKey[normalizeKey(c.Name)] = c
	})
	if err != nil {
		return nil, err
	}

	err = loadAll(ctx, s.subAreas, func(a *taxonomy.SubArea) {
		byKey, ok := l.subAreas[a.CityID]
		if !ok {
			byKey = make(map[string]*taxonomy.SubArea)
			l.subAreas[a.CityID] = byKey
		}
		byKey[normalizeKey(a.Slug)] = a
		byKey[normalizeKey(a.Name)] = a
	})
	if err != nil {
		return nil, err
	}

	err = loadAll(ctx, s.categories, func(c *taxonomy.Category) {
		l.categories[normalizeKey(c.Slug)] = c
		l.categories[normalizeKey(c.Name)] = c
	})
	if err != nil {
		return nil, err
	}

	err = loadAll(ctx, s.subCategories, func(sc *taxonomy.SubCategory) {
		byKey, ok := l.subCategories[sc.CategoryID]
		if !ok {
			byKey = make(map[string]*taxonomy.SubCategory)
			l.subCategories[sc.CategoryID] = byKey
		}
		byKey[normalizeKey(sc.Slug)] = sc
		byKey[normalizeKey(sc.Name)] = sc
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

// loadAll pages through a repository and hands each entity to visit
func loadAll[T any](ctx context.Context, repo shared.Repository[T], visit func(*T)) error {
	filter := shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "asc"}
	for {
		items, err := repo.FindAll(ctx, filter)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to load reference data")
		}
		for i := range items {
			item := items[i]
			visit(&item)
		}
		if len(items) < filter.PageSize {
			return nil
		}
		filter.Page++
	}
}
