package handlers

// AppHandlers holds every HTTP handler of the application
type AppHandlers struct {
	AuthHandler         *AuthHandler
	BusinessHandler     *BusinessHandler
	MemberHandler       *MemberHandler
	PlanHandler         *PlanHandler
	MembershipHandler   *MembershipHandler
	PaymentHandler      *PaymentHandler
	NotificationHandler *NotificationHandler
	DashboardHandler    *DashboardHandler
	JobHandler          *JobHandler
}
