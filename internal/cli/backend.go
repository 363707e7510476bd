// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// backend.go - One-shot commands against the budget backend.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// probeTimeout bounds the status probes.
const probeTimeout = 5 * time.Second

// =============================================================================
// ASK
// =============================================================================

// RunAsk sends a single message and prints the reply.
func RunAsk(ctx context.Context, env *Env, args Args) error {
	if strings.TrimSpace(args.Query) == "" {
		return ErrMissingArgument("message", `budgetchat ask "Show me all my current budgets"`)
	}

	resp, err := env.Client.SendChatMessage(ctx, args.Query)
	if err != nil {
		return NewCommandError("ask", "send", "backend request failed", err)
	}

	if args.JSON {
		return writeJSON(env.Out, resp)
	}

	out := env.renderer(args.Raw).Render(resp.Content, env.width())
	fmt.Fprintln(env.Out, out)
	return nil
}

// =============================================================================
// HISTORY AND MEMORY
// =============================================================================

// RunHistory prints the conversation the backend remembers.
func RunHistory(ctx context.Context, env *Env, args Args) error {
	records, err := env.Client.GetChatHistory(ctx)
	if err != nil {
		return NewCommandError("history", "load", "backend request failed", err)
	}
	msgs := model.ConvertHistory(records, env.now())

	if args.JSON {
		if msgs == nil {
			msgs = []model.Message{}
		}
		return writeJSON(env.Out, msgs)
	}

	if len(msgs) == 0 {
		fmt.Fprintln(env.Out, DimStyle.Render("No conversation history."))
		return nil
	}

	r := env.renderer(false)
	for _, m := range msgs {
		// History carries no timestamps of its own.
		m.Timestamp = time.Time{}
		printMessage(env.Out, r, env.width(), m)
	}
	return nil
}

// RunClear clears the backend's conversation memory.
func RunClear(ctx context.Context, env *Env, args Args) error {
	resp, err := env.Client.ClearChatMemory(ctx)
	if err != nil {
		return NewCommandError("clear", "memory", "backend request failed", err)
	}
	msg := strings.TrimSpace(resp.Message)
	if msg == "" {
		msg = "Chat memory cleared"
	}
	fmt.Fprintln(env.Out, msg)
	return nil
}

// =============================================================================
// STATS
// =============================================================================

// statsOutput is the JSON shape of the stats command.
type statsOutput struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	model.QuickStats
}

// RunStats prints a month's totals. Year and month default to now.
func RunStats(ctx context.Context, env *Env, args Args) error {
	now := env.now()
	year, month := args.Year, args.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	stats, err := env.Client.GetQuickStats(ctx, year, month)
	if err != nil {
		return NewCommandError("stats", "load", "backend request failed", err)
	}

	if args.JSON {
		return writeJSON(env.Out, statsOutput{Year: year, Month: month, QuickStats: *stats})
	}

	printStats(env.Out, time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local), *stats)
	return nil
}

// =============================================================================
// STATUS
// =============================================================================

// statusOutput is the JSON shape of the status command.
type statusOutput struct {
	BaseURL string `json:"baseUrl"`
	Online  bool   `json:"online"`
	Health  string `json:"health,omitempty"`
	MCP     string `json:"mcp,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RunStatus probes /health and /mcp/status. It returns an error when the
// backend is unreachable so scripts can check the exit code.
func RunStatus(ctx context.Context, env *Env, args Args) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out := statusOutput{BaseURL: env.Client.BaseURL()}

	health, healthErr := env.Client.HealthCheck(ctx)
	if healthErr == nil {
		out.Online = true
		out.Health = strings.TrimSpace(health.Status)
		if mcp, err := env.Client.MCPStatus(ctx); err == nil {
			out.MCP = strings.TrimSpace(mcp.Status)
		} else {
			env.logger().Debugw("mcp probe failed", "error", err)
		}
	} else {
		out.Error = healthErr.Error()
	}

	if args.JSON {
		if err := writeJSON(env.Out, out); err != nil {
			return err
		}
	} else {
		printStatus(env, out)
	}

	if healthErr != nil {
		return NewCommandError("status", "probe", "backend unreachable", healthErr)
	}
	return nil
}

func printStatus(env *Env, s statusOutput) {
	status := IncomeStyle.Render(components.StatusOnline.String())
	if !s.Online {
		status = ExpenseStyle.Render(components.StatusOffline.String())
	}
	fmt.Fprintln(env.Out, RenderField("Backend", ValueStyle.Render(s.BaseURL)))
	fmt.Fprintln(env.Out, RenderField("Status", status))
	if s.Health != "" {
		fmt.Fprintln(env.Out, RenderField("Health", s.Health))
	}
	if s.MCP != "" {
		fmt.Fprintln(env.Out, RenderField("MCP", s.MCP))
	}
	fmt.Fprintln(env.Out, RenderField("Checked", DimStyle.Render(format.Time(env.now()))))
}
