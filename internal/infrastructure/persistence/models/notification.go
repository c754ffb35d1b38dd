package models

import (
	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for the Notification domain entity
type NotificationModel struct {
	BaseModel
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Kind      string     `gorm:"type:varchar(16);not null"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Body      string     `gorm:"type:text"`
	Link      string     `gorm:"type:varchar(500)"`
	IsRead    bool       `gorm:"not null;default:false;index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		CompanyID:  m.CompanyID,
		UserID:     m.UserID,
		Kind:       notification.Kind(m.Kind),
		Title:      m.Title,
		Body:       m.Body,
		Link:       m.Link,
		IsRead:     m.IsRead,
	}
}

// FromDomain populates the persistence model from a domain Notification
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.CompanyID = n.CompanyID
	m.UserID = n.UserID
	m.Kind = string(n.Kind)
	m.Title = n.Title
	m.Body = n.Body
	m.Link = n.Link
	m.IsRead = n.IsRead
}
