package dto

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalMembers        int64           `json:"total_members"`
	ActiveMembers       int64           `json:"active_members"`
	ExpiredMembers      int64           `json:"expired_members"`
	RenewalsDueToday    int64           `json:"renewals_due_today"`
	RenewalsDueThisWeek int64           `json:"renewals_due_this_week"`
	MonthlyCollection   decimal.Decimal `json:"monthly_collection"`
	TotalOutstanding    decimal.Decimal `json:"total_outstanding"`
}
