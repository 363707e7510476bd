// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

// Loading texts.
const (
	ThinkingText       = "AI is thinking..."
	LoadingHistoryText = "Loading conversation history..."
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading indicator with a message and optional elapsed time.
type Spinner struct {
	spinner spinner.Model
	theme   *styles.Theme

	message   string
	startTime time.Time
	showTimer bool
	isActive  bool
}

// NewSpinner creates an ASCII line spinner.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = toBubbles(styles.LineSpinner)

	return Spinner{
		spinner: s,
		theme:   theme,
		message: ThinkingText,
	}
}

func toBubbles(cfg styles.SpinnerConfig) spinner.Spinner {
	return spinner.Spinner{Frames: cfg.Frames, FPS: cfg.Duration()}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Message returns the current text.
func (s *Spinner) Message() string {
	return s.message
}

// SetShowTimer enables the elapsed seconds suffix.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner. It returns nil when already running so a
// second tick loop is never started.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update advances the animation. Ticks are dropped while stopped.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing when stopped.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.theme.Spinner.Render(s.spinner.View()) + " " + s.theme.ThinkingText.Render(s.message)
	if s.showTimer && !s.startTime.IsZero() {
		secs := int(time.Since(s.startTime).Seconds())
		out += s.theme.MessageTime.Render(fmt.Sprintf(" (%ds)", secs))
	}
	return out
}
