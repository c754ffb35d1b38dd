package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/bulk"
)

// ImportRecordModel is the persistence model for the import audit Record
type ImportRecordModel struct {
	BaseModel
	SessionID    string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	FileName     string     `gorm:"type:varchar(255);not null"`
	FileSize     int64      `gorm:"not null;default:0"`
	ConflictMode string     `gorm:"type:varchar(16);not null;default:'skip'"`
	Status       string     `gorm:"type:varchar(16);not null;index"`
	TotalRows    int        `gorm:"not null;default:0"`
	SuccessRows  int        `gorm:"not null;default:0"`
	ErrorRows    int        `gorm:"not null;default:0"`
	SkippedRows  int        `gorm:"not null;default:0"`
	ErrorDetails string     `gorm:"type:text;default:'[]'"`
	ImportedBy   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt    time.Time  `gorm:"type:timestamptz;not null"`
	CompletedAt  *time.Time `gorm:"type:timestamptz"`
}

func (ImportRecordModel) TableName() string { return "import_records" }

// ToDomain converts the persistence model to a domain Record
func (m *ImportRecordModel) ToDomain() *bulk.Record {
	record := &bulk.Record{
		BaseEntity:   m.BaseModel.ToDomain(),
		SessionID:    m.SessionID,
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		ConflictMode: bulk.ConflictMode(m.ConflictMode),
		Status:       bulk.SessionStatus(m.Status),
		TotalRows:    m.TotalRows,
		SuccessRows:  m.SuccessRows,
		ErrorRows:    m.ErrorRows,
		SkippedRows:  m.SkippedRows,
		ImportedBy:   m.ImportedBy,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
	}
	if m.ErrorDetails != "" {
		_ = record.SetErrorDetailsFromJSON(m.ErrorDetails)
	}
	return record
}

// FromDomain populates the persistence model from a domain Record
func (m *ImportRecordModel) FromDomain(r *bulk.Record) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SessionID = r.SessionID
	m.FileName = r.FileName
	m.FileSize = r.FileSize
	m.ConflictMode = string(r.ConflictMode)
	m.Status = string(r.Status)
	m.TotalRows = r.TotalRows
	m.SuccessRows = r.SuccessRows
	m.ErrorRows = r.ErrorRows
	m.SkippedRows = r.SkippedRows
	if details, err := r.ErrorDetailsJSON(); err == nil {
		m.ErrorDetails = details
	}
	m.ImportedBy = r.ImportedBy
	m.StartedAt = r.StartedAt
	m.CompletedAt = r.CompletedAt
}
