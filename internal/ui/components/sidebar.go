// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

// =============================================================================
// SIDEBAR CONTENT
// =============================================================================

// QuickAction is a canned message the user can send with one key.
type QuickAction struct {
	Label string
	Text  string
	Key   string
}

// QuickActions are bound to alt+1 through alt+4 in order.
var QuickActions = []QuickAction{
	{Label: "Show my budgets", Text: "Show me all my current budgets", Key: "alt+1"},
	{Label: "Add expense", Text: "I want to add an expense", Key: "alt+2"},
	{Label: "Create budget", Text: "Help me create a new budget", Key: "alt+3"},
	{Label: "Financial advice", Text: "Give me financial advice based on my spending", Key: "alt+4"},
}

// ExampleCommands lists sample requests shown in the sidebar.
var ExampleCommands = []string{
	"Add $50 expense for groceries to Food category",
	"Create a $300 budget for Transportation",
	"I received $3000 salary today",
	"Show me my Food category spending this month",
	"Set up a $200 Entertainment budget with 75% alert",
	"How much have I spent so far?",
	"Add another $20 to that category",
	"What was my budget for that again?",
}

// MemoryExamples shows a follow-up exchange relying on chat memory.
var MemoryExamples = []string{
	`User: "I spent $50 on groceries"`,
	`AI: "Added $50 expense for groceries..."`,
	`User: "Add another $25 to that"`,
	`AI: "I'll add $25 more to groceries..."`,
}

// Sidebar section titles and fixed text.
const (
	TitleOverview       = "Budget Overview"
	TitleQuickActions   = "Quick Actions"
	TitleChatMemory     = "💭 Chat Memory"
	TitleExamples       = "💡 Example Commands"
	TitleMemoryExamples = "💬 Conversation Memory Examples"

	ChatMemoryText   = "I remember our conversation context. Clear memory to start fresh."
	ClearMemoryLabel = "Clear Memory"
	ClearMemoryKey   = "ctrl+x"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar renders the budget overview and the help sections.
type Sidebar struct {
	Stats   model.QuickStats
	Height  int
	Overlay bool

	theme *styles.Theme
}

// NewSidebar creates a sidebar with zero stats.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// SetStats replaces the displayed stats.
func (s *Sidebar) SetStats(stats model.QuickStats) {
	s.Stats = stats
}

// SetHeight sets the available height; zero means unbounded.
func (s *Sidebar) SetHeight(h int) {
	s.Height = h
}

// SetOverlay switches between the docked and the overlay frame.
func (s *Sidebar) SetOverlay(overlay bool) {
	s.Overlay = overlay
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	sections := []string{
		s.renderOverview(),
		s.renderQuickActions(),
		s.renderChatMemory(),
		s.renderExamples(),
	}
	content := strings.Join(sections, "\n")

	frame := s.theme.Sidebar
	if s.Overlay {
		frame = s.theme.SidebarOverlay
	}
	if s.Height > 0 {
		frame = frame.MaxHeight(s.Height)
	}
	return frame.Render(content)
}

// textWidth is the usable width inside the frame.
func (s *Sidebar) textWidth() int {
	return styles.SidebarWidth - 2
}

func (s *Sidebar) renderOverview() string {
	var b strings.Builder
	b.WriteString(s.theme.SectionTitle.Render(TitleOverview))
	b.WriteString("\n")

	net := s.theme.NetNegative
	if s.Stats.NetPositive() {
		net = s.theme.NetPositive
	}

	b.WriteString(s.statRow("Income", s.theme.IncomeValue.Render(format.Currency(s.Stats.TotalIncome))))
	b.WriteString("\n")
	b.WriteString(s.statRow("Expenses", s.theme.ExpenseValue.Render(format.Currency(s.Stats.TotalExpenses))))
	b.WriteString("\n")
	b.WriteString(s.statRow("Net", net.Render(format.Currency(s.Stats.NetAmount))))

	if s.Stats.TotalIncome > 0 {
		pct := s.Stats.TotalExpenses / s.Stats.TotalIncome * 100
		b.WriteString("\n")
		b.WriteString(s.theme.StatsLabel.Render(styles.RenderProgressBar(s.textWidth()-8, pct)))
		b.WriteString(s.theme.StatsLabel.Render(fmt.Sprintf(" %3.0f%%", pct)))
	}
	return b.String()
}

func (s *Sidebar) statRow(label, value string) string {
	left := s.theme.StatsLabel.Render(label)
	gap := s.textWidth() - lipgloss.Width(left) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + value
}

func (s *Sidebar) renderQuickActions() string {
	lines := []string{s.theme.SectionTitle.Render(TitleQuickActions)}
	for _, a := range QuickActions {
		lines = append(lines, s.theme.ShortcutKey.Render(a.Key)+" "+s.theme.ShortcutDesc.Render(a.Label))
	}
	return strings.Join(lines, "\n")
}

func (s *Sidebar) renderChatMemory() string {
	text := lipgloss.NewStyle().Width(s.textWidth()).Render(ChatMemoryText)
	return strings.Join([]string{
		s.theme.SectionTitle.Render(TitleChatMemory),
		s.theme.SidebarText.Render(text),
		s.theme.ShortcutKey.Render(ClearMemoryKey) + " " + s.theme.ShortcutDesc.Render(ClearMemoryLabel),
	}, "\n")
}

func (s *Sidebar) renderExamples() string {
	wrap := lipgloss.NewStyle().Width(s.textWidth())

	lines := []string{s.theme.SectionTitle.Render(TitleExamples)}
	for _, cmd := range ExampleCommands {
		lines = append(lines, s.theme.ExampleText.Render(wrap.Render(`"`+cmd+`"`)))
	}

	lines = append(lines, s.theme.SectionTitle.Render(TitleMemoryExamples))
	for _, ex := range MemoryExamples {
		lines = append(lines, s.theme.SidebarText.Render(wrap.Render("│ "+ex)))
	}
	return strings.Join(lines, "\n")
}
