package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID            string           `gorm:"type:uuid;not null;index"`
	BusinessID        string           `gorm:"type:uuid;index"`
	Type              NotificationType `gorm:"type:varchar(40);not null"`
	Title             string           `gorm:"not null"`
	Message           string
	IsRead            bool `gorm:"not null;default:false"`
	ReadAt            *time.Time
	RelatedEntityType string `gorm:"type:varchar(50)"`
	RelatedEntityID   string `gorm:"type:varchar(36)"`
	Metadata          datatypes.JSON
}
