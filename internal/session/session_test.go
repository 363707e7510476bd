// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/model"
)

// =============================================================================
// FAKE BACKEND
// =============================================================================

type fakeBackend struct {
	mu sync.Mutex

	reply       string
	sendErr     error
	sendGate    chan struct{} // when non-nil, SendChatMessage waits on it
	history     []model.HistoryRecord
	historyErr  error
	historyGate chan struct{} // when non-nil, GetChatHistory waits on it
	clearErr    error
	stats       model.QuickStats
	statsErr    error

	sends        []string
	statsCalls   int32
	historyCalls int32
	clears       int32
	statsYear    int
	statsMonth   int
}

func (f *fakeBackend) SendChatMessage(ctx context.Context, message string) (*api.ChatResponse, error) {
	f.mu.Lock()
	f.sends = append(f.sends, message)
	gate := f.sendGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &api.ChatResponse{Role: "assistant", Content: f.reply, Timestamp: 1700000000000}, nil
}

func (f *fakeBackend) GetChatHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	atomic.AddInt32(&f.historyCalls, 1)
	if f.historyGate != nil {
		<-f.historyGate
	}
	return f.history, f.historyErr
}

func (f *fakeBackend) ClearChatMemory(ctx context.Context) (*api.ClearResponse, error) {
	atomic.AddInt32(&f.clears, 1)
	if f.clearErr != nil {
		return nil, f.clearErr
	}
	return &api.ClearResponse{Message: "Chat memory cleared successfully"}, nil
}

func (f *fakeBackend) GetQuickStats(ctx context.Context, year, month int) (*model.QuickStats, error) {
	atomic.AddInt32(&f.statsCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsYear, f.statsMonth = year, month
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	s := f.stats
	return &s, nil
}

type memRecorder struct {
	mu   sync.Mutex
	msgs []model.Message
}

func (r *memRecorder) Record(ctx context.Context, msg model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T, b Backend) *Session {
	t.Helper()
	s := New(Config{
		Backend:           b,
		Now:               func() time.Time { return fixedNow },
		StatsRefreshDelay: 10 * time.Millisecond,
	})
	t.Cleanup(s.Close)
	return s
}

// =============================================================================
// INIT TESTS
// =============================================================================

func TestNew_InitialState(t *testing.T) {
	s := newTestSession(t, &fakeBackend{})
	st := s.Snapshot()

	assert.Empty(t, st.Messages)
	assert.True(t, st.LoadingHistory, "history is loading until Init finishes")
	assert.False(t, st.Sending)
	assert.True(t, st.Stats.IsZero())
	assert.True(t, st.Busy())
}

func TestInit_HistoryConverted(t *testing.T) {
	b := &fakeBackend{
		history: []model.HistoryRecord{
			{MessageType: "User", Content: "hi"},
			{MessageType: "Assistant", Text: "hello"},
		},
		stats: model.QuickStats{TotalIncome: 3000, TotalExpenses: 1200.5, NetAmount: 1799.5},
	}
	s := newTestSession(t, b)
	s.Init(context.Background())

	st := s.Snapshot()
	require.Len(t, st.Messages, 3)
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, st.Messages[0].Role)
	assert.Equal(t, model.Message{Role: model.RoleUser, Content: "hi", Timestamp: fixedNow}, st.Messages[1])
	assert.Equal(t, model.Message{Role: model.RoleAssistant, Content: "hello", Timestamp: fixedNow}, st.Messages[2])
	assert.False(t, st.LoadingHistory)
	assert.Equal(t, b.stats, st.Stats)

	assert.Equal(t, 2025, b.statsYear)
	assert.Equal(t, 3, b.statsMonth)
}

func TestInit_HistoryFailure(t *testing.T) {
	b := &fakeBackend{
		historyErr: &api.ClientError{Type: api.ErrTypeConnection, Message: "connection refused"},
		statsErr:   errors.New("stats down"),
	}
	s := newTestSession(t, b)
	s.Init(context.Background())

	st := s.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.False(t, st.LoadingHistory)
	assert.True(t, st.Stats.IsZero(), "failed stats fetch keeps the empty snapshot")
}

func TestLoadHistory_KeepsLiveMessages(t *testing.T) {
	b := &fakeBackend{
		reply:   "Sure.",
		history: []model.HistoryRecord{{MessageType: "USER", Text: "earlier"}},
	}
	s := newTestSession(t, b)

	require.True(t, s.Send(context.Background(), "now"))
	s.LoadHistory(context.Background())

	st := s.Snapshot()
	require.Len(t, st.Messages, 4)
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.Equal(t, "earlier", st.Messages[1].Content)
	assert.Equal(t, "now", st.Messages[2].Content)
	assert.Equal(t, "Sure.", st.Messages[3].Content)
}

func TestLoadHistory_ReloadKeepsOneWelcome(t *testing.T) {
	b := &fakeBackend{history: []model.HistoryRecord{{MessageType: "USER", Text: "earlier"}}}
	s := newTestSession(t, b)

	s.LoadHistory(context.Background())
	s.LoadHistory(context.Background())

	st := s.Snapshot()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.Equal(t, "earlier", st.Messages[1].Content)
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_AppendsUserThenReply(t *testing.T) {
	rec := &memRecorder{}
	b := &fakeBackend{reply: "✅ Budget created successfully!"}
	s := New(Config{Backend: b, Now: func() time.Time { return fixedNow }, Recorder: rec, StatsRefreshDelay: 10 * time.Millisecond})
	defer s.Close()
	s.Init(context.Background())

	ok := s.Send(context.Background(), "Create a $300 budget for rent")
	require.True(t, ok)

	st := s.Snapshot()
	require.Len(t, st.Messages, 3)
	assert.Equal(t, model.RoleUser, st.Messages[1].Role)
	assert.Equal(t, "Create a $300 budget for rent", st.Messages[1].Content)
	assert.Equal(t, model.RoleAssistant, st.Messages[2].Role)
	assert.Equal(t, "✅ Budget created successfully!", st.Messages[2].Content)
	assert.Equal(t, time.UnixMilli(1700000000000), st.Messages[2].Timestamp)
	assert.False(t, st.Sending)

	assert.Equal(t, []string{"Create a $300 budget for rent"}, b.sends)
	assert.Len(t, rec.msgs, 2)
}

func TestSend_UserMessageVisibleBeforeReply(t *testing.T) {
	b := &fakeBackend{reply: "ok", sendGate: make(chan struct{})}
	s := newTestSession(t, b)

	done := make(chan bool)
	go func() { done <- s.Send(context.Background(), "I spent $25 on coffee today") }()

	require.Eventually(t, func() bool { return s.Snapshot().Sending }, time.Second, 5*time.Millisecond)
	st := s.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, model.RoleUser, st.Messages[0].Role)

	// A second send while the first is pending is ignored
	assert.False(t, s.Send(context.Background(), "another"))
	assert.Len(t, s.Snapshot().Messages, 1)

	close(b.sendGate)
	assert.True(t, <-done)

	st = s.Snapshot()
	assert.Len(t, st.Messages, 2)
	assert.False(t, st.Sending)
	assert.Len(t, b.sends, 1)
}

func TestSend_BlankIgnored(t *testing.T) {
	b := &fakeBackend{reply: "ok"}
	s := newTestSession(t, b)
	s.Init(context.Background())
	before := s.Snapshot().Messages

	for _, text := range []string{"", "   ", "\n\t "} {
		if s.Send(context.Background(), text) {
			t.Errorf("Send(%q) = true, want false", text)
		}
	}

	assert.Equal(t, before, s.Snapshot().Messages)
	assert.Empty(t, b.sends)
}

func TestSend_FailureAppendsFallback(t *testing.T) {
	b := &fakeBackend{sendErr: &api.ClientError{Type: api.ErrTypeHTTP, Status: 500, Message: "HTTP error! status: 500"}}
	s := newTestSession(t, b)
	s.Init(context.Background())
	statsBefore := atomic.LoadInt32(&b.statsCalls)

	require.True(t, s.Send(context.Background(), "Add $50 expense for groceries"))

	st := s.Snapshot()
	require.Len(t, st.Messages, 3)
	assert.Equal(t, "Add $50 expense for groceries", st.Messages[1].Content)
	assert.Equal(t, model.RoleAssistant, st.Messages[2].Role)
	assert.Equal(t, model.SendFailedText, st.Messages[2].Content)
	assert.False(t, st.Sending)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, statsBefore, atomic.LoadInt32(&b.statsCalls), "no stats refresh after a failed send")
}

func TestSend_RealClientHTTP500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	s := newTestSession(t, client)

	require.True(t, s.Send(context.Background(), "hello"))
	st := s.Snapshot()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "hello", st.Messages[0].Content)
	assert.Equal(t, model.SendFailedText, st.Messages[1].Content)
	assert.False(t, st.Sending)
}

func TestSend_SchedulesStatsRefresh(t *testing.T) {
	b := &fakeBackend{reply: "💸 Transaction added successfully!"}
	s := newTestSession(t, b)

	require.True(t, s.Send(context.Background(), "I spent $25 on coffee today"))

	b.mu.Lock()
	b.stats = model.QuickStats{TotalExpenses: 25, NetAmount: -25}
	b.mu.Unlock()

	assert.Eventually(t, func() bool {
		return s.Snapshot().Stats.TotalExpenses == 25
	}, time.Second, 5*time.Millisecond)
}

func TestClose_CancelsPendingRefresh(t *testing.T) {
	b := &fakeBackend{reply: "ok"}
	s := New(Config{Backend: b, StatsRefreshDelay: 50 * time.Millisecond})

	require.True(t, s.Send(context.Background(), "hi"))
	s.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&b.statsCalls))
}

// =============================================================================
// CLEAR TESTS
// =============================================================================

func TestClearMemory(t *testing.T) {
	tests := []struct {
		name     string
		clearErr error
	}{
		{"success", nil},
		{"failure still resets", errors.New("HTTP error! status: 503")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &fakeBackend{reply: "ok", clearErr: tc.clearErr, history: []model.HistoryRecord{{MessageType: "USER", Text: "old"}}}
			s := newTestSession(t, b)
			s.Init(context.Background())
			s.Send(context.Background(), "one")
			s.Send(context.Background(), "two")

			s.ClearMemory(context.Background())

			st := s.Snapshot()
			require.Len(t, st.Messages, 1)
			assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
			assert.Equal(t, int32(1), atomic.LoadInt32(&b.clears))
		})
	}
}

func TestClearMemory_DuringHistoryLoad(t *testing.T) {
	b := &fakeBackend{
		history:     []model.HistoryRecord{{MessageType: "USER", Text: "old"}},
		historyGate: make(chan struct{}),
	}
	s := newTestSession(t, b)

	done := make(chan struct{})
	go func() {
		s.LoadHistory(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&b.historyCalls) == 1 }, time.Second, 5*time.Millisecond)

	s.ClearMemory(context.Background())
	close(b.historyGate)
	<-done

	st := s.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, model.WelcomeText, st.Messages[0].Content)
	assert.False(t, st.LoadingHistory)
}

// =============================================================================
// CHANGE NOTIFICATION TESTS
// =============================================================================

func TestChanges_Signalled(t *testing.T) {
	s := newTestSession(t, &fakeBackend{reply: "ok"})

	// Drain anything pending
	select {
	case <-s.Changes():
	default:
	}

	s.ClearMemory(context.Background())

	select {
	case <-s.Changes():
	case <-time.After(time.Second):
		t.Fatal("no change signal after ClearMemory")
	}
}
