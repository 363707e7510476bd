// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/budgetchat-tui/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "transcript.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndMessages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	at := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	rec, err := s.StartSession(ctx, "http://localhost:8080/api", at)
	require.NoError(t, err)
	require.Len(t, rec.SessionID(), 36)

	want := []model.Message{
		model.NewUserMessage("I spent $25 on coffee today", at),
		model.NewAssistantMessage("💸 Transaction added successfully!", at.Add(time.Second)),
	}
	for _, m := range want {
		require.NoError(t, rec.Record(ctx, m))
	}

	got, err := s.Messages(ctx, rec.SessionID())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].Role, got[i].Role)
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "timestamp %d", i)
	}

	// Prefix lookup
	got, err = s.Messages(ctx, rec.SessionID()[:8])
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	older, err := s.StartSession(ctx, "http://a/api", base)
	require.NoError(t, err)
	require.NoError(t, older.Record(ctx, model.NewUserMessage("Show me all my current budgets\nplease", base)))
	require.NoError(t, older.Record(ctx, model.NewAssistantMessage("📋 No active budgets found.", base)))

	newer, err := s.StartSession(ctx, "http://b/api", base.Add(time.Hour))
	require.NoError(t, err)

	metas, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	assert.Equal(t, newer.SessionID(), metas[0].ID)
	assert.Equal(t, 0, metas[0].MessageCount)
	assert.Equal(t, "", metas[0].Preview)

	assert.Equal(t, older.SessionID(), metas[1].ID)
	assert.Equal(t, 2, metas[1].MessageCount)
	assert.Equal(t, "Show me all my current budgets", metas[1].Preview)
	assert.Equal(t, "http://a/api", metas[1].APIBase)

	limited, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMessages_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Messages(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Messages() error = %v, want ErrNotFound", err)
	}

	_, err = s.Messages(context.Background(), "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Messages(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transcript.db")

	s, err := Open(path)
	require.NoError(t, err)
	rec, err := s.StartSession(ctx, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, rec.Record(ctx, model.NewUserMessage("hi", time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	metas, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, 1, metas[0].MessageCount)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	at := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	rec, err := s.StartSession(ctx, "http://localhost:8080/api", at)
	require.NoError(t, err)
	require.NoError(t, rec.Record(ctx, model.NewAssistantMessage("welcome", at)))
	require.NoError(t, rec.Record(ctx, model.NewUserMessage("Show me all my current budgets\nplease", at)))

	conv, err := s.Load(ctx, rec.SessionID()[:6])
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID(), conv.ID)
	assert.Equal(t, "http://localhost:8080/api", conv.APIBase)
	assert.True(t, at.Equal(conv.StartedAt))
	assert.Equal(t, 2, conv.MessageCount)
	assert.Equal(t, "Show me all my current budgets", conv.Preview)
	require.Len(t, conv.Messages, 2)

	_, err = s.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
