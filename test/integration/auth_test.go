package integration_test

import (
	"net/http"
	"testing"

	"memberhub_backend/internal/services/dto"
	"memberhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	owner := helpers.RegisterOwner(t, ts, "owner@gym.test")
	assert.NotEmpty(t, owner.Token)
	assert.NotEmpty(t, owner.BusinessID)

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
			"email":         "OWNER@gym.test",
			"password":      "password123",
			"first_name":    "Dup",
			"last_name":     "Licate",
			"business_name": "Other gym",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode, body)
	})

	t.Run("short password", func(t *testing.T) {
		resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
			"email":         "new@gym.test",
			"password":      "short",
			"first_name":    "New",
			"last_name":     "Owner",
			"business_name": "New gym",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Contains(t, body, "VALIDATION_FAILED")
	})

	t.Run("login", func(t *testing.T) {
		resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
			"email":    "owner@gym.test",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, body)

		var auth dto.AuthResponse
		helpers.Decode(t, body, &auth)
		assert.Equal(t, owner.BusinessID, auth.Business.ID)
		assert.Equal(t, "Bearer", auth.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
			"email":    "owner@gym.test",
			"password": "password124",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route without token", func(t *testing.T) {
		resp, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/members", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStaffAccounts(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := helpers.RegisterOwner(t, ts, "owner@gym.test")

	resp, body := ts.SendRequest(t, http.MethodPost, "/api/v1/staff", owner.Token, map[string]interface{}{
		"email":      "desk@gym.test",
		"password":   "password123",
		"first_name": "Dana",
		"last_name":  "Desk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "desk@gym.test",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var staff dto.AuthResponse
	helpers.Decode(t, body, &staff)
	assert.Equal(t, owner.BusinessID, staff.Business.ID, "staff share the owner's business")

	// admins run the desk but cannot manage staff, the business or jobs
	member := helpers.CreateMember(t, ts, staff.AccessToken, "Ann", "Lee")
	assert.NotEmpty(t, member.ID)

	resp, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/staff", staff.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/business", staff.AccessToken, map[string]interface{}{"name": "Hijacked", "currency": "USD"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/expire-memberships", staff.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/staff", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserDTO
	helpers.Decode(t, body, &users)
	assert.Len(t, users, 2)
}
