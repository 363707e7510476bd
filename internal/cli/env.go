// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// env.go - Runtime dependencies shared by every command handler.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/logging"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/session"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// Env carries what command handlers need. main builds it once.
type Env struct {
	Config     *config.Config
	ConfigPath string

	Client   *api.Client
	Recorder session.Recorder
	Logger   *zap.SugaredLogger

	Out    io.Writer
	ErrOut io.Writer

	// Interactive is true when Out is a terminal; enables markdown rendering
	Interactive bool
	Width       int

	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) logger() *zap.SugaredLogger {
	return logging.OrNop(e.Logger)
}

func (e *Env) width() int {
	if e.Width > 0 {
		return e.Width
	}
	return DefaultTerminalWidth
}

// renderer picks glamour for terminals and plain text for pipes or --raw.
func (e *Env) renderer(raw bool) components.MarkdownRenderer {
	if raw || !e.Interactive || (e.Config != nil && !e.Config.UI.Markdown) {
		return components.PlainRenderer{}
	}
	theme := components.MarkdownAuto
	if e.Config != nil {
		theme = e.Config.UI.Theme
	}
	return components.NewGlamourRenderer(theme)
}

// info prints a status line to ErrOut unless quiet.
func (e *Env) info(quiet bool, format string, args ...interface{}) {
	if quiet || e.ErrOut == nil {
		return
	}
	fmt.Fprintf(e.ErrOut, format+"\n", args...)
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMessage prints one conversation message with a role label.
func printMessage(w io.Writer, r components.MarkdownRenderer, width int, msg model.Message) {
	label := AssistantLabelStyle.Render(msg.Role.DisplayName())
	if msg.IsUser() {
		label = UserLabelStyle.Render(msg.Role.DisplayName())
	}
	if !msg.Timestamp.IsZero() {
		label += " " + DimStyle.Render(format.Time(msg.Timestamp))
	}
	fmt.Fprintln(w, label)

	body := msg.Content
	if !msg.IsUser() {
		body = r.Render(msg.Content, width)
	}
	fmt.Fprintln(w, body)
	fmt.Fprintln(w)
}

// printStats prints the budget overview block.
func printStats(w io.Writer, period time.Time, s model.QuickStats) {
	net := ExpenseStyle
	if s.NetPositive() {
		net = IncomeStyle
	}
	fmt.Fprintln(w, TitleStyle.Render("Budget Overview ("+format.LongDate(period)+")"))
	fmt.Fprintln(w, RenderField("Income", IncomeStyle.Render(format.Currency(s.TotalIncome))))
	fmt.Fprintln(w, RenderField("Expenses", ExpenseStyle.Render(format.Currency(s.TotalExpenses))))
	fmt.Fprintln(w, RenderField("Net", net.Render(format.Currency(s.NetAmount))))
}
