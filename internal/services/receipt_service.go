package services

import (
	"bytes"
	"context"
	"html/template"

	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Receipt {{.PaymentID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { text-align: center; margin-bottom: 30px; }
        .details { margin: 20px 0; }
        .amount { font-size: 24px; font-weight: bold; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.BusinessName}}</h1>
        <h2>Payment Receipt</h2>
    </div>
    <div class="details">
        <p><strong>Payment ID:</strong> {{.PaymentID}}</p>
        <p><strong>Date:</strong> {{.PaymentDate}}</p>
        <p><strong>Member:</strong> {{.MemberName}}</p>
        <p><strong>Plan:</strong> {{.PlanName}}</p>
        <p><strong>Method:</strong> {{.Method}}</p>
        {{- if .Reference}}
        <p><strong>Reference:</strong> {{.Reference}}</p>
        {{- end}}
    </div>
    <div class="amount">{{.Amount}} {{.Currency}}</div>
    <div class="details">
        <p>Paid to date: {{.PaidAmount}} {{.Currency}} of {{.TotalAmount}} {{.Currency}}</p>
    </div>
</body>
</html>
`))

type receiptView struct {
	BusinessName string
	PaymentID    string
	PaymentDate  string
	MemberName   string
	PlanName     string
	Method       string
	Reference    string
	Amount       string
	Currency     string
	PaidAmount   string
	TotalAmount  string
}

type ReceiptService interface {
	RenderHTML(ctx context.Context, db *gorm.DB, businessID, paymentID string) ([]byte, error)
	ShareableLink(ctx context.Context, db *gorm.DB, businessID, paymentID string) (*dto.ReceiptLinkResponse, error)
}

type receiptService struct {
	paymentRepo    repositories.PaymentRepository
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	planRepo       repositories.PlanRepository
	businessRepo   repositories.BusinessRepository
}

func NewReceiptService(
	paymentRepo repositories.PaymentRepository,
	membershipRepo repositories.MembershipRepository,
	memberRepo repositories.MemberRepository,
	planRepo repositories.PlanRepository,
	businessRepo repositories.BusinessRepository,
) ReceiptService {
	return &receiptService{
		paymentRepo:    paymentRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		businessRepo:   businessRepo,
	}
}

func (s *receiptService) RenderHTML(ctx context.Context, db *gorm.DB, businessID, paymentID string) ([]byte, error) {
	payment, err := s.paymentRepo.FindByID(db, businessID, paymentID)
	if err != nil {
		return nil, mapPaymentError(err)
	}
	business, err := s.businessRepo.FindByID(db, businessID)
	if err != nil {
		return nil, mapBusinessError(err)
	}
	membership, err := s.membershipRepo.FindByID(db, businessID, payment.MembershipID)
	if err != nil {
		return nil, mapMembershipError(err)
	}

	view := receiptView{
		BusinessName: business.Name,
		PaymentID:    payment.ID,
		PaymentDate:  payment.PaymentDate.UTC().Format("2006-01-02 15:04"),
		Method:       paymentMethodLabel(payment.PaymentMethod),
		Reference:    payment.TransactionReference,
		Amount:       payment.Amount.StringFixed(2),
		Currency:     business.Currency,
		PaidAmount:   membership.PaidAmount.StringFixed(2),
		TotalAmount:  membership.TotalAmount.StringFixed(2),
	}
	// a member or plan row missing here still yields a receipt
	if member, err := s.memberRepo.FindByID(db, businessID, membership.MemberID); err == nil {
		view.MemberName = member.FullName()
	}
	if plan, err := s.planRepo.FindByID(db, businessID, membership.SubscriptionPlanID); err == nil {
		view.PlanName = plan.Name
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buf.Bytes(), nil
}

func (s *receiptService) ShareableLink(ctx context.Context, db *gorm.DB, businessID, paymentID string) (*dto.ReceiptLinkResponse, error) {
	if _, err := s.paymentRepo.FindByID(db, businessID, paymentID); err != nil {
		return nil, mapPaymentError(err)
	}
	return &dto.ReceiptLinkResponse{
		PaymentID: paymentID,
		URL:       "/api/v1/receipts/" + paymentID + "/html",
	}, nil
}

func paymentMethodLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentMethodCash:
		return "Cash"
	case models.PaymentMethodCard:
		return "Card"
	case models.PaymentMethodBankTransfer:
		return "Bank transfer"
	case models.PaymentMethodMobileMoney:
		return "Mobile money"
	case models.PaymentMethodOnline:
		return "Online"
	default:
		return "Other"
	}
}
