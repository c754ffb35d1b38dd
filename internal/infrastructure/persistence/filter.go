package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/shared"
)

// applyPagination applies normalized page/page-size bounds to a query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter.Normalize()
	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// applyOrder applies ordering when the requested column is in the allow-list.
// Unknown columns fall back to created_at to keep ORDER BY injection-safe.
func applyOrder(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	column := filter.OrderBy
	if column == "" || !allowed[column] {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	return query.Order(column + " " + dir)
}

// countThen runs an independent count under the query's predicates, then
// applies ordering and pagination for the page fetch.
func countThen(query *gorm.DB, filter shared.Filter, allowed map[string]bool) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	page := applyPagination(applyOrder(query, filter, allowed), filter)
	return page, total, nil
}
