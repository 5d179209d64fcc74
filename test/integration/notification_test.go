package integration_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"memberhub_backend/internal/services/dto"
	"memberhub_backend/test/helpers"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsArePersistedAndPushed(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := helpers.RegisterOwner(t, ts, "owner@gym.test")

	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws?token=" + owner.Token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return ts.App.WSManager.IsUserConnected(owner.UserID) },
		2*time.Second, 10*time.Millisecond)

	member := helpers.CreateMember(t, ts, owner.Token, "Ann", "Lee")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Type         string                   `json:"type"`
		Notification dto.NotificationResponse `json:"notification"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "notification", frame.Type)
	assert.EqualValues(t, "member_added", frame.Notification.Type)

	plan := helpers.CreatePlan(t, ts, owner.Token, "Monthly", "30", 30)
	resp, body := helpers.CreateMembership(t, ts, owner.Token, member.ID, plan.ID, "2024-01-01T00:00:00Z")
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread/count", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unread dto.UnreadCountResponse
	helpers.Decode(t, body, &unread)
	assert.EqualValues(t, 2, unread.Count)

	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?take=1", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.NotificationResponse
	helpers.Decode(t, body, &list)
	require.Len(t, list, 1)

	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/"+list[0].ID+"/read", owner.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	other := helpers.RegisterOwner(t, ts, "other@gym.test")
	resp, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/"+list[0].ID+"/read", other.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read-all", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var marked dto.MarkAllReadResponse
	helpers.Decode(t, body, &marked)
	assert.EqualValues(t, 1, marked.Updated)

	// take above the cap is clamped, not rejected
	resp, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?take=500", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	helpers.Decode(t, body, &list)
	assert.Len(t, list, 2)
}

func TestOperationalEndpoints(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	helpers.RegisterOwner(t, ts, "owner@gym.test")

	resp, body = ts.SendRequest(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "memberhub_http_requests_total")
}
