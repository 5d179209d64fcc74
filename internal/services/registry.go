package services

import (
	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/repositories"
)

// ServiceContainer holds every service of the application
type ServiceContainer struct {
	AuthService         AuthService
	BusinessService     BusinessService
	MemberService       MemberService
	PlanService         PlanService
	MembershipService   MembershipService
	PaymentService      PaymentService
	ReceiptService      ReceiptService
	DashboardService    DashboardService
	NotificationService NotificationService
	ExpiryService       ExpiryService
}

// NewServiceContainer wires repositories into services. Repositories are
// stateless; the *gorm.DB is passed per call.
func NewServiceContainer(tokens *auth.TokenIssuer, clk clock.Clock) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	businessRepo := repositories.NewBusinessRepository()
	memberRepo := repositories.NewMemberRepository()
	planRepo := repositories.NewPlanRepository()
	membershipRepo := repositories.NewMembershipRepository()
	paymentRepo := repositories.NewPaymentRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(notificationRepo, businessRepo, clk)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, businessRepo, tokens),
		BusinessService:     NewBusinessService(businessRepo),
		MemberService:       NewMemberService(memberRepo, notificationService),
		PlanService:         NewPlanService(planRepo),
		MembershipService:   NewMembershipService(membershipRepo, memberRepo, planRepo, notificationService, clk),
		PaymentService:      NewPaymentService(paymentRepo, membershipRepo, notificationService, clk),
		ReceiptService:      NewReceiptService(paymentRepo, membershipRepo, memberRepo, planRepo, businessRepo),
		DashboardService:    NewDashboardService(memberRepo, membershipRepo, paymentRepo, clk),
		NotificationService: notificationService,
		ExpiryService:       NewExpiryService(membershipRepo, notificationRepo, notificationService, clk),
	}
}
