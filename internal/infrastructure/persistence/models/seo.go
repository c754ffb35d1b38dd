package models

import (
	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/seo"
)

// SeoOverrideModel is the persistence model for SEO overrides
type SeoOverrideModel struct {
	BaseModel
	Path        string     `gorm:"type:varchar(500);index"`
	TargetType  string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_seo_overrides_target"`
	TargetID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_seo_overrides_target"`
	Title       string     `gorm:"type:varchar(255)"`
	Description string     `gorm:"type:text"`
	Keywords    string     `gorm:"type:text;default:'[]'"`
	OGImage     string     `gorm:"type:varchar(500)"`
	NoIndex     bool       `gorm:"not null;default:false"`
}

func (SeoOverrideModel) TableName() string { return "seo_overrides" }

// ToDomain converts the persistence model to a domain Override
func (m *SeoOverrideModel) ToDomain() *seo.Override {
	return &seo.Override{
		BaseEntity:  m.BaseModel.ToDomain(),
		Path:        m.Path,
		TargetType:  seo.TargetType(m.TargetType),
		TargetID:    m.TargetID,
		Title:       m.Title,
		Description: m.Description,
		Keywords:    unmarshalStrings(m.Keywords),
		OGImage:     m.OGImage,
		NoIndex:     m.NoIndex,
	}
}

// FromDomain populates the persistence model from a domain Override
func (m *SeoOverrideModel) FromDomain(o *seo.Override) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Path = o.Path
	m.TargetType = string(o.TargetType)
	m.TargetID = o.TargetID
	m.Title = o.Title
	m.Description = o.Description
	m.Keywords = marshalStrings(o.Keywords)
	m.OGImage = o.OGImage
	m.NoIndex = o.NoIndex
}
