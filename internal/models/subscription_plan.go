package models

import "github.com/shopspring/decimal"

type SubscriptionPlan struct {
	BaseModel
	BusinessID   string `gorm:"type:uuid;not null;index"`
	Name         string `gorm:"type:varchar(200);not null"`
	Description  string
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DurationDays int             `gorm:"not null"`
	IsActive     bool            `gorm:"not null;default:true"`
}
