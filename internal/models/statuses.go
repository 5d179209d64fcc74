package models

type UserRole string
type MembershipStatus string
type PaymentMethod string
type NotificationType string

const (
	UserRoleOwner UserRole = "owner"
	UserRoleAdmin UserRole = "admin"

	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"

	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodOther        PaymentMethod = "other"

	NotificationTypeRenewalReminder   NotificationType = "renewal_reminder"
	NotificationTypeMembershipExpired NotificationType = "membership_expired"
	NotificationTypePaymentReceived   NotificationType = "payment_received"
	NotificationTypePaymentDue        NotificationType = "payment_due"
	NotificationTypeMembershipCreated NotificationType = "membership_created"
	NotificationTypeMembershipUpdated NotificationType = "membership_updated"
	NotificationTypeMemberAdded       NotificationType = "member_added"
	NotificationTypeSystemAlert       NotificationType = "system_alert"
)

func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusExpired, MembershipStatusCancelled:
		return true
	}
	return false
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodMobileMoney, PaymentMethodOnline, PaymentMethodOther:
		return true
	}
	return false
}
