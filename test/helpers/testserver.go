// Package helpers boots the full HTTP stack over an in-memory database for
// end-to-end tests.
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"memberhub_backend/internal/app"
	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/config"
	"memberhub_backend/test/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Epoch is where every test server clock starts
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Clock  *clock.Fixed
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.TTL = 60
	cfg.Scheduler.ReminderDays = 3
	cfg.Scheduler.LockTTL = 60
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// NewTestServer returns a running server with its own database. The
// websocket hub runs until the test ends; the scheduler stays off so the
// test drives expiry through the jobs endpoint.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewFixed(Epoch)
	db := testdb.New(t, clk.Now)

	application := app.New(testConfig(), db, clk)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, application.Start(ctx))

	server := httptest.NewServer(application.Router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		App:    application,
		Clock:  clk,
	}
}

// SendRequest sends body as JSON and returns the response with its body read
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

// Decode unmarshals a response body into out
func Decode(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), "body: %s", body)
}
