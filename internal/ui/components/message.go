// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// bubbleFrame is the horizontal space taken by a bubble's border and padding.
const bubbleFrame = 4

// MessageView renders conversation messages as bubbles.
type MessageView struct {
	Width          int
	ShowTimestamps bool

	renderer MarkdownRenderer
	theme    *styles.Theme
}

// NewMessageView creates a message view. A nil renderer renders assistant
// text as-is.
func NewMessageView(theme *styles.Theme, renderer MarkdownRenderer) *MessageView {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	return &MessageView{
		Width:          80,
		ShowTimestamps: true,
		renderer:       renderer,
		theme:          theme,
	}
}

// SetWidth sets the width available to the conversation.
func (v *MessageView) SetWidth(width int) {
	v.Width = width
}

// SetRenderer swaps the markdown renderer.
func (v *MessageView) SetRenderer(r MarkdownRenderer) {
	if r == nil {
		r = PlainRenderer{}
	}
	v.renderer = r
}

// RenderAll renders every message, separated by a blank line.
func (v *MessageView) RenderAll(msgs []model.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, v.Render(m))
	}
	return strings.Join(parts, "\n\n")
}

// Render renders a single message.
func (v *MessageView) Render(msg model.Message) string {
	if msg.IsUser() {
		return v.renderUser(msg)
	}
	return v.renderAssistant(msg)
}

// maxBubbleWidth is the widest a bubble may be, border included.
func (v *MessageView) maxBubbleWidth() int {
	w := v.Width * 4 / 5
	if w < 20 {
		w = v.Width
	}
	if w < bubbleFrame+1 {
		w = bubbleFrame + 1
	}
	return w
}

// ==========================================================================
// USER BUBBLE - right aligned, literal text
// ==========================================================================

func (v *MessageView) renderUser(msg model.Message) string {
	inner := v.maxBubbleWidth() - bubbleFrame
	textWidth := longestLine(msg.Content)
	if textWidth > inner {
		textWidth = inner
	}
	if textWidth < 1 {
		textWidth = 1
	}

	bubble := v.theme.UserBubble.Width(textWidth + 2).Render(msg.Content)
	label := v.label(msg, v.theme.UserLabel)

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	return lipgloss.PlaceHorizontal(v.Width, lipgloss.Right, block)
}

// ==========================================================================
// ASSISTANT BUBBLE - left aligned, markdown
// ==========================================================================

func (v *MessageView) renderAssistant(msg model.Message) string {
	inner := v.maxBubbleWidth() - bubbleFrame
	body := v.renderer.Render(msg.Content, inner)

	bubble := v.theme.AssistantBubble.MaxWidth(v.maxBubbleWidth()).Render(body)
	label := v.label(msg, v.theme.AssistantLabel)

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

func (v *MessageView) label(msg model.Message, style lipgloss.Style) string {
	out := style.Render(msg.Role.DisplayName())
	if v.ShowTimestamps && !msg.Timestamp.IsZero() {
		out += " " + v.theme.MessageTime.Render(format.Time(msg.Timestamp))
	}
	return out
}

func longestLine(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if w := util.Width(line); w > max {
			max = w
		}
	}
	return max
}
