package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morabaat/backend/internal/domain/notification"
	"github.com/morabaat/backend/internal/domain/shared"
	"github.com/morabaat/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForUser lists a user's notifications newest-first
func (r *GormNotificationRepository) FindForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	return r.page(query, filter)
}

// FindForCompany lists a company's notifications newest-first
func (r *GormNotificationRepository) FindForCompany(ctx context.Context, companyID uuid.UUID, unreadOnly bool, filter shared.Filter) ([]notification.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("company_id = ?", companyID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	return r.page(query, filter)
}

func (r *GormNotificationRepository) page(query *gorm.DB, filter shared.Filter) ([]notification.Notification, int64, error) {
	page, total, err := countThen(query, filter, map[string]bool{"created_at": true})
	if err != nil {
		return nil, 0, err
	}
	var rows []models.NotificationModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toNotificationSlice(rows), total, nil
}

// CountUnreadForUser counts a user's unread notifications
func (r *GormNotificationRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CountUnreadForCompany counts a company's unread notifications
func (r *GormNotificationRepository) CountUnreadForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("company_id = ? AND is_read = ?", companyID, false).
		Count(&count).Error
	return count, err
}

// MarkAllReadForUser marks all of a user's notifications as read
func (r *GormNotificationRepository) MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// MarkAllReadForCompany marks all of a company's notifications as read
func (r *GormNotificationRepository) MarkAllReadForCompany(ctx context.Context, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("company_id = ? AND is_read = ?", companyID, false).
		Update("is_read", true).Error
}

// FindAll finds notifications matching the filter
func (r *GormNotificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{})
	query = applyPagination(applyOrder(query, filter, map[string]bool{"created_at": true}), filter)

	var rows []models.NotificationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toNotificationSlice(rows), nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	var model models.NotificationModel
	model.FromDomain(n)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.NotificationModel{}, id)
}

// Count counts notifications matching the filter
func (r *GormNotificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Count(&count).Error
	return count, err
}

func toNotificationSlice(rows []models.NotificationModel) []notification.Notification {
	notifications := make([]notification.Notification, 0, len(rows))
	for i := range rows {
		notifications = append(notifications, *rows[i].ToDomain())
	}
	return notifications
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
