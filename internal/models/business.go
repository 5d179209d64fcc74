package models

// Business is a tenant. Every other entity is scoped to one.
type Business struct {
	BaseModel
	UserID      string `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string
	Address     string
	Phone       string `gorm:"type:varchar(50)"`
	Email       string
	Currency    string `gorm:"type:varchar(3);not null;default:'USD'"`
	TaxID       string `gorm:"type:varchar(50)"`
}
