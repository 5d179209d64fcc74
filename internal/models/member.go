package models

import "time"

type Member struct {
	BaseModel
	BusinessID  string `gorm:"type:uuid;not null;index"`
	FirstName   string `gorm:"type:varchar(100);not null"`
	LastName    string `gorm:"type:varchar(100);not null;index"`
	Email       string
	Phone       string `gorm:"type:varchar(50)"`
	Address     string
	DateOfBirth *time.Time
	IsActive    bool `gorm:"not null;default:true"`
	Notes       string
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
