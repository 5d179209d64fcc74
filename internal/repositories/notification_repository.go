package repositories

import (
	"errors"
	"time"

	"memberhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria - listing filter for a user's inbox
type NotificationCriteria struct {
	UnreadOnly bool
	Skip       int
	Take       int
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, id, userID string, now time.Time) error
	MarkAllAsRead(db *gorm.DB, userID string, now time.Time) (int64, error)
	// ExistsForEntity reports whether a notification of this type was
	// already raised for the entity
	ExistsForEntity(db *gorm.DB, notificationType models.NotificationType, entityID string) (bool, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var notification models.Notification
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, error) {
	var notifications []models.Notification

	take := criteria.Take
	if take <= 0 {
		take = 50
	}
	if take > 100 {
		take = 100
	}
	skip := criteria.Skip
	if skip < 0 {
		skip = 0
	}

	query := db.Where("user_id = ? AND is_deleted = ?", userID, false)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	err := query.
		Order("created_at DESC").
		Offset(skip).
		Limit(take).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_deleted = ? AND is_read = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead returns ErrNotificationNotFound when the notification belongs
// to someone else, so ownership is not disclosed.
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, id, userID string, now time.Time) error {
	notification, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return ErrNotificationNotFound
	}
	if notification.IsRead {
		return nil
	}

	return db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string, now time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_deleted = ? AND is_read = ?", userID, false, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) ExistsForEntity(db *gorm.DB, notificationType models.NotificationType, entityID string) (bool, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("type = ? AND related_entity_id = ? AND is_deleted = ?", notificationType, entityID, false).
		Count(&count).Error
	return count > 0, err
}
