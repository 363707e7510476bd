// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for line-oriented budgetchat commands.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)

	// LabelStyle is used for left-aligned field labels
	LabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(12)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)

	// IncomeStyle and ExpenseStyle color money in and out
	IncomeStyle  = lipgloss.NewStyle().Foreground(styles.Income).Bold(true)
	ExpenseStyle = lipgloss.NewStyle().Foreground(styles.Expense).Bold(true)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)

	// PromptStyle is the chat prompt
	PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

	// UserLabelStyle and AssistantLabelStyle label transcript lines
	UserLabelStyle      = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	AssistantLabelStyle = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
)

// RenderSeparator renders a horizontal rule of the given width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 60
	}
	return DimStyle.Render(strings.Repeat("-", width))
}

// RenderField renders "label value" with an aligned label column.
func RenderField(label, value string) string {
	return LabelStyle.Render(label) + value
}
