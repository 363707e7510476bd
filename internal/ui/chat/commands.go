// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/session"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// Prober checks backend liveness. *api.Client satisfies it.
type Prober interface {
	HealthCheck(ctx context.Context) (*api.StatusResponse, error)
	MCPStatus(ctx context.Context) (*api.StatusResponse, error)
}

// probeTimeout bounds each health or MCP request.
const probeTimeout = 5 * time.Second

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// waitForChange blocks until the session signals a change or ctx ends.
func waitForChange(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sess.Changes():
			return sessionChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func initSessionCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		sess.Init(ctx)
		return sessionInitDoneMsg{}
	}
}

func sendCmd(ctx context.Context, sess *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{Accepted: sess.Send(ctx, text)}
	}
}

func clearCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		sess.ClearMemory(ctx)
		return clearDoneMsg{}
	}
}

func refreshStatsCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		sess.RefreshStats(ctx)
		return statsRefreshedMsg{}
	}
}

// =============================================================================
// PROBE COMMANDS
// =============================================================================

// probeCmd runs the health probe and, when the backend is up, the MCP probe.
func probeCmd(ctx context.Context, p Prober, log *zap.SugaredLogger) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		hctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		if _, err := p.HealthCheck(hctx); err != nil {
			log.Debugw("health probe failed", "error", err)
			return healthMsg{Status: components.StatusOffline}
		}

		msg := healthMsg{Status: components.StatusOnline}
		mcp, err := p.MCPStatus(hctx)
		if err != nil {
			log.Debugw("mcp probe failed", "error", err)
			return msg
		}
		msg.MCP = strings.TrimSpace(mcp.Status)
		return msg
	}
}

// healthTickCmd schedules the next probe. A non-positive interval disables
// periodic probing.
func healthTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}
