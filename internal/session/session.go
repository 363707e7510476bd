// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/logging"
	"github.com/jeranaias/budgetchat-tui/internal/model"
)

// DefaultStatsRefreshDelay is how long after a successful send the stats
// are re-fetched.
const DefaultStatsRefreshDelay = 500 * time.Millisecond

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the part of the budget API the view-model talks to.
// *api.Client satisfies it.
type Backend interface {
	SendChatMessage(ctx context.Context, message string) (*api.ChatResponse, error)
	GetChatHistory(ctx context.Context) ([]model.HistoryRecord, error)
	ClearChatMemory(ctx context.Context) (*api.ClearResponse, error)
	GetQuickStats(ctx context.Context, year, month int) (*model.QuickStats, error)
}

// Recorder receives every message exchanged during the live session.
type Recorder interface {
	Record(ctx context.Context, msg model.Message) error
}

// Config holds construction options for a Session.
type Config struct {
	Backend Backend

	// Logger receives background failures (nil = no logging)
	Logger *zap.SugaredLogger

	// Now is the clock (default: time.Now)
	Now func() time.Time

	// StatsRefreshDelay is the wait before re-fetching stats after a send
	// (default: 500ms)
	StatsRefreshDelay time.Duration

	// Recorder is optional
	Recorder Recorder
}

// =============================================================================
// STATE
// =============================================================================

// State is a point-in-time copy of the view-model.
type State struct {
	Messages       []model.Message
	Sending        bool
	LoadingHistory bool
	Stats          model.QuickStats
}

// Busy reports whether input should be disabled.
func (s State) Busy() bool {
	return s.Sending || s.LoadingHistory
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the chat view-model.
type Session struct {
	mu sync.Mutex

	backend    Backend
	log        *zap.SugaredLogger
	now        func() time.Time
	statsDelay time.Duration
	recorder   Recorder

	messages       []model.Message
	sending        bool
	loadingHistory bool
	stats          model.QuickStats

	// clears counts ClearMemory resets; a history load that sees it
	// change discards what it fetched.
	clears uint64

	refresh *time.Timer
	closed  bool

	changes chan struct{}
}

// New creates a Session. History is considered loading until Init
// (or LoadHistory) finishes.
func New(cfg Config) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.StatsRefreshDelay <= 0 {
		cfg.StatsRefreshDelay = DefaultStatsRefreshDelay
	}
	return &Session{
		backend:        cfg.Backend,
		log:            logging.OrNop(cfg.Logger),
		now:            cfg.Now,
		statsDelay:     cfg.StatsRefreshDelay,
		recorder:       cfg.Recorder,
		loadingHistory: true,
		changes:        make(chan struct{}, 1),
	}
}

// Changes delivers a signal after every state change. Signals coalesce:
// a slow reader sees one pending signal, then reads Snapshot.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// notify must be called without s.mu held.
func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]model.Message, len(s.messages))
	copy(msgs, s.messages)
	return State{
		Messages:       msgs,
		Sending:        s.sending,
		LoadingHistory: s.loadingHistory,
		Stats:          s.stats,
	}
}

// Close stops any pending stats refresh. Later refreshes are not scheduled.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Init fetches the current month's stats and the chat history concurrently
// and returns when both have settled. Failures are logged only.
func (s *Session) Init(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		s.RefreshStats(ctx)
		return nil
	})
	g.Go(func() error {
		s.LoadHistory(ctx)
		return nil
	})
	_ = g.Wait()
}

// LoadHistory replaces the message list with the welcome message, the
// converted backend history, and any messages created while loading.
// On failure only the welcome message precedes the live messages. If
// memory is cleared while the fetch is in flight, the fetched history is
// discarded and the cleared list is kept.
func (s *Session) LoadHistory(ctx context.Context) {
	s.mu.Lock()
	s.loadingHistory = true
	start, clears := len(s.messages), s.clears
	s.mu.Unlock()
	s.notify()

	records, err := s.backend.GetChatHistory(ctx)
	now := s.now()
	if err != nil {
		s.log.Warnw("chat history load failed", "error", err)
		records = nil
	}
	history := model.ConvertHistory(records, now)
	s.log.Debugw("chat history loaded", "records", len(records), "messages", len(history))

	s.mu.Lock()
	if s.clears != clears {
		s.loadingHistory = false
		s.mu.Unlock()
		s.log.Debugw("chat history discarded after clear")
		s.notify()
		return
	}
	live := s.messages[start:]
	msgs := make([]model.Message, 0, 1+len(history)+len(live))
	msgs = append(msgs, model.Welcome(now))
	msgs = append(msgs, history...)
	msgs = append(msgs, live...)
	s.messages = msgs
	s.loadingHistory = false
	s.mu.Unlock()
	s.notify()
}

// RefreshStats fetches quick stats for the current calendar month and
// replaces the snapshot. Failures leave the previous snapshot in place.
func (s *Session) RefreshStats(ctx context.Context) {
	now := s.now()
	year, month := now.Year(), int(now.Month())

	stats, err := s.backend.GetQuickStats(ctx, year, month)
	if err != nil {
		s.log.Warnw("stats refresh failed", "year", year, "month", month, "error", err)
		return
	}

	s.mu.Lock()
	s.stats = *stats
	s.mu.Unlock()
	s.notify()
}

// Send submits a user message. It returns false without changing state
// when text is blank or another send is in flight. Otherwise the user
// message is appended immediately and exactly one assistant message (the
// reply or a fallback error) follows when the call settles.
func (s *Session) Send(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return false
	}
	userMsg := model.NewUserMessage(text, s.now())
	s.messages = append(s.messages, userMsg)
	s.sending = true
	s.mu.Unlock()
	s.notify()
	s.record(ctx, userMsg)

	resp, err := s.backend.SendChatMessage(ctx, text)

	var reply model.Message
	if err != nil {
		s.log.Errorw("send failed", "error", err)
		reply = model.SendFailed(s.now())
	} else {
		reply = resp.ToMessage(s.now())
	}

	s.mu.Lock()
	s.messages = append(s.messages, reply)
	s.sending = false
	if err == nil {
		s.scheduleStatsRefreshLocked()
	}
	s.mu.Unlock()
	s.notify()
	s.record(ctx, reply)

	return true
}

// ClearMemory asks the backend to forget the conversation and resets the
// list to the welcome message whether or not the call succeeded.
func (s *Session) ClearMemory(ctx context.Context) {
	if _, err := s.backend.ClearChatMemory(ctx); err != nil {
		s.log.Warnw("clear chat memory failed", "error", err)
	}

	s.mu.Lock()
	s.messages = []model.Message{model.Welcome(s.now())}
	s.clears++
	s.mu.Unlock()
	s.notify()
}

// scheduleStatsRefreshLocked re-fetches stats after the configured delay.
// A newer send replaces a refresh that has not fired yet.
func (s *Session) scheduleStatsRefreshLocked() {
	if s.closed {
		return
	}
	if s.refresh != nil {
		s.refresh.Stop()
	}
	s.refresh = time.AfterFunc(s.statsDelay, func() {
		s.RefreshStats(context.Background())
	})
}

func (s *Session) record(ctx context.Context, msg model.Message) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, msg); err != nil {
		s.log.Warnw("transcript record failed", "role", msg.Role.String(), "error", err)
	}
}
