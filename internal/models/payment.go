package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is append-only. Corrections are recorded as new payments.
type Payment struct {
	BaseModel
	BusinessID           string          `gorm:"type:uuid;not null;index"`
	MembershipID         string          `gorm:"type:uuid;not null;index"`
	Amount               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentDate          time.Time       `gorm:"not null;index"`
	PaymentMethod        PaymentMethod   `gorm:"type:varchar(30);not null"`
	TransactionReference string          `gorm:"type:varchar(100)"`
	Notes                string
}
