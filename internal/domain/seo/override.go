package seo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// TargetType identifies what an override applies to when it is not bound to
// a literal path.
type TargetType string

const (
	TargetCompany  TargetType = "company"
	TargetCategory TargetType = "category"
	TargetCity     TargetType = "city"
	TargetCountry  TargetType = "country"
	TargetPage     TargetType = "page"
)

// IsValid checks if the target type is known
func (t TargetType) IsValid() bool {
	switch t {
	case TargetCompany, TargetCategory, TargetCity, TargetCountry, TargetPage:
		return true
	}
	return false
}

// Override stores per-page SEO metadata. It is keyed either by a literal
// path or by a (targetType, targetID) pair; empty fields fall back to caller
// defaults per-field at resolution time.
type Override struct {
	shared.BaseEntity
	Path        string
	TargetType  TargetType
	TargetID    *uuid.UUID
	Title       string
	Description string
	Keywords    []string
	OGImage     string
	NoIndex     bool
}

// NewPathOverride creates an override keyed by path
func NewPathOverride(path string) (*Override, error) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") {
		return nil, shared.NewDomainError("INVALID_PATH", "Override path must start with /")
	}
	return &Override{
		BaseEntity: shared.NewBaseEntity(),
		Path:       path,
		TargetType: TargetPage,
	}, nil
}

// NewTargetOverride creates an override keyed by a target entity
func NewTargetOverride(targetType TargetType, targetID uuid.UUID) (*Override, error) {
	if !targetType.IsValid() || targetType == TargetPage {
		return nil, shared.NewDomainError("INVALID_TARGET", "Unknown override target: "+string(targetType))
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Override target id is required")
	}
	return &Override{
		BaseEntity: shared.NewBaseEntity(),
		TargetType: targetType,
		TargetID:   &targetID,
	}, nil
}

// Repository provides access to override storage
type Repository interface {
	shared.Repository[Override]
	FindByPath(ctx context.Context, path string) (*Override, error)
	FindByTarget(ctx context.Context, targetType TargetType, targetID uuid.UUID) (*Override, error)
}
