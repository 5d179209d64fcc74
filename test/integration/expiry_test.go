package integration_test

import (
	"net/http"
	"testing"
	"time"

	"memberhub_backend/internal/services/dto"
	"memberhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirySweepAndDashboard(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := helpers.RegisterOwner(t, ts, "owner@gym.test")

	ann := helpers.CreateMember(t, ts, owner.Token, "Ann", "Lee")
	bob := helpers.CreateMember(t, ts, owner.Token, "Bob", "Ray")
	weekly := helpers.CreatePlan(t, ts, owner.Token, "Weekly", "10.00", 7)
	monthly := helpers.CreatePlan(t, ts, owner.Token, "Monthly", "40.00", 30)

	resp, body := helpers.CreateMembership(t, ts, owner.Token, ann.ID, weekly.ID, "2024-01-01T00:00:00Z")
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var annMembership dto.MembershipDTO
	helpers.Decode(t, body, &annMembership)

	resp, body = helpers.CreateMembership(t, ts, owner.Token, bob.ID, monthly.ID, "2024-01-01T00:00:00Z")
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var bobMembership dto.MembershipDTO
	helpers.Decode(t, body, &bobMembership)
	helpers.Pay(t, ts, owner.Token, bobMembership.ID, "15.00")

	// Jan 10: Ann's weekly plan ran out on Jan 8
	ts.Clock.Set(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/expire-memberships", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var result dto.ExpireMembershipsResponse
	helpers.Decode(t, body, &result)
	assert.Equal(t, 1, result.Expired)
	assert.Zero(t, result.Failed)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/expire-memberships", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	helpers.Decode(t, body, &result)
	assert.Zero(t, result.Expired, "second run changes nothing")

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/memberships/expired", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var expired []dto.MembershipDTO
	helpers.Decode(t, body, &expired)
	require.Len(t, expired, 1)
	assert.Equal(t, annMembership.ID, expired[0].ID)

	// an expired membership no longer blocks a new one
	resp, body = helpers.CreateMembership(t, ts, owner.Token, ann.ID, weekly.ID, "2024-01-05T00:00:00Z")
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/dashboard", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.DashboardStats
	helpers.Decode(t, body, &stats)
	assert.EqualValues(t, 2, stats.TotalMembers)
	assert.EqualValues(t, 2, stats.ActiveMembers)
	assert.EqualValues(t, 1, stats.ExpiredMembers)
	assert.EqualValues(t, 1, stats.RenewalsDueThisWeek, "Ann's second week ends Jan 12")
	assert.Equal(t, "15.00", stats.MonthlyCollection.StringFixed(2))
	assert.Equal(t, "35.00", stats.TotalOutstanding.StringFixed(2))
}
