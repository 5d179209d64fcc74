package dto

import (
	"time"

	"memberhub_backend/internal/models"

	"gorm.io/datatypes"
)

type NotificationListQuery struct {
	UnreadOnly bool `form:"unread_only" json:"unread_only"`
	Skip       int  `form:"skip" json:"skip" validate:"omitempty,min=0"`
	Take       int  `form:"take" json:"take" validate:"omitempty,min=1"`
}

// CreateNotification is what domain services hand to the notification sink
type CreateNotification struct {
	UserID            string
	BusinessID        string
	Type              models.NotificationType
	Title             string
	Message           string
	RelatedEntityType string
	RelatedEntityID   string
	Metadata          map[string]interface{}
}

type NotificationResponse struct {
	ID                string                  `json:"id"`
	Type              models.NotificationType `json:"type"`
	Title             string                  `json:"title"`
	Message           string                  `json:"message"`
	IsRead            bool                    `json:"is_read"`
	ReadAt            *time.Time              `json:"read_at,omitempty"`
	RelatedEntityType string                  `json:"related_entity_type,omitempty"`
	RelatedEntityID   string                  `json:"related_entity_id,omitempty"`
	Metadata          datatypes.JSON          `json:"metadata,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:                n.ID,
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		IsRead:            n.IsRead,
		ReadAt:            n.ReadAt,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		Metadata:          n.Metadata,
		CreatedAt:         n.CreatedAt,
	}
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
