package helpers

import (
	"net/http"
	"testing"

	"memberhub_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
)

// Owner is a registered business owner with a live token
type Owner struct {
	Token      string
	UserID     string
	BusinessID string
}

func RegisterOwner(t *testing.T, ts *TestServer, email string) Owner {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":         email,
		"password":      "password123",
		"first_name":    "Olga",
		"last_name":     "Owner",
		"business_name": "Gym of " + email,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var auth dto.AuthResponse
	Decode(t, body, &auth)
	return Owner{Token: auth.AccessToken, UserID: auth.User.ID, BusinessID: auth.Business.ID}
}

func CreateMember(t *testing.T, ts *TestServer, token, first, last string) dto.MemberDTO {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/members", token, map[string]interface{}{
		"first_name": first,
		"last_name":  last,
		"email":      first + "@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var member dto.MemberDTO
	Decode(t, body, &member)
	return member
}

func CreatePlan(t *testing.T, ts *TestServer, token, name, price string, days int) dto.PlanDTO {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/plans", token, map[string]interface{}{
		"name":          name,
		"price":         price,
		"duration_days": days,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var plan dto.PlanDTO
	Decode(t, body, &plan)
	return plan
}

// CreateMembership starts the membership at start (RFC3339)
func CreateMembership(t *testing.T, ts *TestServer, token, memberID, planID, start string) (*http.Response, string) {
	t.Helper()

	return ts.SendRequest(t, http.MethodPost, "/api/v1/memberships", token, map[string]interface{}{
		"member_id":            memberID,
		"subscription_plan_id": planID,
		"start_date":           start,
	})
}

func Pay(t *testing.T, ts *TestServer, token, membershipID, amount string) dto.PaymentDTO {
	t.Helper()

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"membership_id":  membershipID,
		"amount":         amount,
		"payment_method": "card",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var payment dto.PaymentDTO
	Decode(t, body, &payment)
	return payment
}
