// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DockBreakpoint is the width at which the sidebar is docked.
const DockBreakpoint = 100

// SidebarWidth is the width of the docked or overlaid sidebar.
const SidebarWidth = 34

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	StatusLabel    lipgloss.Style
	StatusOnline   lipgloss.Style
	StatusOffline  lipgloss.Style
	StatusChecking lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar        lipgloss.Style
	SidebarOverlay lipgloss.Style
	SectionTitle   lipgloss.Style
	SidebarText    lipgloss.Style
	ExampleText    lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	StatsLabel     lipgloss.Style
	IncomeValue    lipgloss.Style
	ExpenseValue   lipgloss.Style
	NetPositive    lipgloss.Style
	NetNegative    lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	MessageTime     lipgloss.Style

	// ==========================================================================
	// INPUT AND LOADING STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputHint      lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
	ErrorText      lipgloss.Style
}

// ApplyThemeMode forces lipgloss's background detection for "dark" or
// "light" and returns whether the dark palette is in use. Any other value
// keeps terminal detection.
func ApplyThemeMode(mode string) bool {
	switch strings.ToLower(mode) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return true
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

// DisableColor strips color from all lipgloss output (NO_COLOR, --no-color).
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// NewTheme creates a theme for the given mode ("auto", "dark", "light").
func NewTheme(mode string) *Theme {
	t := &Theme{
		IsDark:       ApplyThemeMode(mode),
		ColorProfile: lipgloss.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusLabel = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusOnline = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StatusOffline = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StatusChecking = lipgloss.NewStyle().Foreground(Amber)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Width(SidebarWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarOverlay = lipgloss.NewStyle().
		Width(SidebarWidth).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginTop(1)

	t.SidebarText = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ExampleText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextPrimary)

	t.StatsLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.IncomeValue = lipgloss.NewStyle().Foreground(Income).Bold(true)
	t.ExpenseValue = lipgloss.NewStyle().Foreground(Expense).Bold(true)
	t.NetPositive = lipgloss.NewStyle().Foreground(Income).Bold(true)
	t.NetNegative = lipgloss.NewStyle().Foreground(Expense).Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	t.MessageTime = lipgloss.NewStyle().Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Spinner = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.ErrorText = lipgloss.NewStyle().Foreground(Rose)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < DockBreakpoint {
		return LayoutNarrow
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // sidebar as overlay
	LayoutWide                     // sidebar docked
)
