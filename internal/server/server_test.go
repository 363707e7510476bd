// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/session"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *api.Client) {
	t.Helper()
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return testNow }
	}
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, api.NewClientWithConfig(&api.ClientConfig{BaseURL: ts.URL + "/api"})
}

// =============================================================================
// ENDPOINT TESTS
// =============================================================================

func TestServer_ChatAndHistory(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{})

	resp, err := client.SendChatMessage(ctx, "I spent $25 on coffee today")
	require.NoError(t, err)
	assert.Equal(t, "assistant", resp.Role)
	assert.True(t, strings.HasPrefix(resp.Content, "💸 Transaction added successfully!"))
	assert.NotZero(t, resp.Timestamp)

	records, err := client.GetChatHistory(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "USER", records[0].MessageType)
	assert.Equal(t, "I spent $25 on coffee today", records[0].Text)

	msgs := model.ConvertHistory(records, testNow)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
}

func TestServer_ClearMemory(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{})

	_, err := client.SendChatMessage(ctx, "hello")
	require.NoError(t, err)

	cleared, err := client.ClearChatMemory(ctx)
	require.NoError(t, err)
	assert.Equal(t, ClearedText, cleared.Message)

	records, err := client.GetChatHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestServer_Totals(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{})

	_, err := client.SendChatMessage(ctx, "I received $3000 salary")
	require.NoError(t, err)
	_, err = client.SendChatMessage(ctx, "Add $1200.50 expense for rent")
	require.NoError(t, err)

	stats, err := client.GetQuickStats(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, model.QuickStats{TotalIncome: 3000, TotalExpenses: 1200.5, NetAmount: 1799.5}, *stats)

	stats, err = client.GetQuickStats(ctx, 2025, 4)
	require.NoError(t, err)
	assert.True(t, stats.IsZero())
}

func TestServer_TotalsInvalidPeriod(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{
		"/api/transactions/totals/2025/13",
		"/api/transactions/totals/2025/0",
		"/api/transactions/totals/year/3",
	} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
		var body Totals
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, Totals{}, body)
	}
}

func TestServer_StatusProbesPlainText(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{})

	health, err := client.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, HealthText, health.Status)

	mcp, err := client.MCPStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MCP Tools Available: true", mcp.Status)
}

func TestServer_BadChatRequest(t *testing.T) {
	s := New(Config{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", "hello"},
		{"blank message", `{"message": "   "}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(tc.body))
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body chatResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, strings.HasPrefix(body.Content, "❌ Invalid request"), "content = %q", body.Content)
		})
	}
}

func TestServer_RateLimited(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{RateLimit: 0.001, Burst: 2})

	_, err := client.HealthCheck(ctx)
	require.NoError(t, err)
	_, err = client.HealthCheck(ctx)
	require.NoError(t, err)

	_, err = client.HealthCheck(ctx)
	code, ok := api.StatusCode(err)
	require.True(t, ok, "error = %v", err)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := New(Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/chat/message", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeShutdown(t *testing.T) {
	s := New(Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: "http://" + ln.Addr().String() + "/api"})
	require.Eventually(t, func() bool {
		_, err := client.HealthCheck(context.Background())
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

// =============================================================================
// VIEW-MODEL INTEGRATION
// =============================================================================

func TestSessionAgainstMockBackend(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, Config{})

	_, err := client.SendChatMessage(ctx, "Create a $300 budget for rent")
	require.NoError(t, err)

	s := session.New(session.Config{
		Backend:           client,
		Now:               func() time.Time { return testNow },
		StatsRefreshDelay: 10 * time.Millisecond,
	})
	defer s.Close()

	s.Init(ctx)
	st := s.Snapshot()
	require.Len(t, st.Messages, 3, "welcome + one remembered exchange")
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.Equal(t, "Create a $300 budget for rent", st.Messages[1].Content)
	assert.False(t, st.LoadingHistory)

	require.True(t, s.Send(ctx, "I spent $40 on gas"))
	assert.Eventually(t, func() bool {
		return s.Snapshot().Stats.TotalExpenses == 40
	}, 2*time.Second, 10*time.Millisecond)

	s.ClearMemory(ctx)
	assert.Len(t, s.Snapshot().Messages, 1)

	records, err := client.GetChatHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
