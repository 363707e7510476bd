// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// =============================================================================
// BACKEND STATUS
// =============================================================================

// BackendStatus is the result of the last health probe.
type BackendStatus int

const (
	StatusChecking BackendStatus = iota
	StatusOnline
	StatusOffline
)

// String returns the status text shown in the header.
func (s BackendStatus) String() string {
	switch s {
	case StatusOnline:
		return "● Online"
	case StatusOffline:
		return "● Offline"
	default:
		return "● Checking"
	}
}

// HeaderTitle is the application title.
const HeaderTitle = "AI Budget Assistant"

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header renders the title bar with month and backend status.
type Header struct {
	Title  string
	Date   time.Time
	Status BackendStatus
	MCP    string
	Width  int

	theme *styles.Theme
}

// NewHeader creates a header dated now with the status still unknown.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:  HeaderTitle,
		Date:   time.Now(),
		Status: StatusChecking,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetDate sets the date whose month is displayed.
func (h *Header) SetDate(t time.Time) {
	h.Date = t
}

// SetStatus records the latest health probe result.
func (h *Header) SetStatus(s BackendStatus) {
	h.Status = s
}

// SetMCP sets the MCP status line; empty hides it.
func (h *Header) SetMCP(text string) {
	h.MCP = text
}

// View renders the header.
func (h *Header) View() string {
	left := h.theme.HeaderTitle.Render(h.Title) + "  " +
		h.theme.HeaderSubtitle.Render(format.LongDate(h.Date))

	right := h.theme.StatusLabel.Render("Status ") + h.statusStyle().Render(h.Status.String())

	inner := h.Width - 2
	if inner < 0 {
		inner = 0
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	var line string
	if gap >= 1 {
		line = left + lipgloss.NewStyle().Width(gap).Render("") + right
	} else {
		line = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	if h.MCP != "" {
		mcp := util.Truncate(util.FirstLine(h.MCP), inner)
		line = lipgloss.JoinVertical(lipgloss.Left, line, h.theme.StatusLabel.Render(mcp))
	}

	return h.theme.Header.Width(h.Width).Render(line)
}

func (h *Header) statusStyle() lipgloss.Style {
	switch h.Status {
	case StatusOnline:
		return h.theme.StatusOnline
	case StatusOffline:
		return h.theme.StatusOffline
	default:
		return h.theme.StatusChecking
	}
}
