package models

// User is a staff account. Owners register together with their business;
// admins are added by the owner.
type User struct {
	BaseModel
	BusinessID   string   `gorm:"type:uuid;not null;index"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	FirstName    string   `gorm:"type:varchar(100);not null"`
	LastName     string   `gorm:"type:varchar(100);not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
}
