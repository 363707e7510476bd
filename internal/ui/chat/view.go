// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

// minMainWidth is the narrowest conversation column "always" still docks beside.
const minMainWidth = 40

// =============================================================================
// LAYOUT
// =============================================================================

// docked reports whether the sidebar sits beside the conversation.
func (m Model) docked() bool {
	switch m.uiCfg.Sidebar {
	case "always":
		return m.width >= styles.SidebarWidth+minMainWidth
	case "never":
		return false
	default:
		return m.width >= styles.DockBreakpoint
	}
}

// mainWidth is the width of the conversation column.
func (m Model) mainWidth() int {
	w := m.width
	if m.docked() {
		w -= lipgloss.Width(m.sidebar.View())
	}
	if w < 1 {
		w = 1
	}
	return w
}

// layout sizes every component for the current terminal and re-renders
// the conversation.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	if m.docked() {
		m.sidebarOpen = false
	}

	main := m.mainWidth()

	m.header.SetWidth(m.width)
	m.sidebar.SetOverlay(!m.docked())
	m.sidebar.SetHeight(m.height - lipgloss.Height(m.header.View()))

	m.input.SetWidth(max(main-4, 10))

	msgWidth := main - 2
	if m.uiCfg.WordWrap > 0 && m.uiCfg.WordWrap < msgWidth {
		msgWidth = m.uiCfg.WordWrap
	}
	m.messages.SetWidth(max(msgWidth, 1))

	reserved := lipgloss.Height(m.header.View()) + m.inputHeight() + m.statusHeight()
	m.viewport.Width = main
	m.viewport.Height = max(m.height-reserved, 1)

	m.renderConversation()
}

// inputHeight is the text area plus its top border and the hint line.
func (m Model) inputHeight() int {
	return inputLines + 2
}

func (m Model) statusHeight() int {
	if m.showHelp {
		return len(HelpLines(m.keys)) + 1
	}
	return 1
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m Model) View() string {
	header := m.header.View()

	var mainCol string
	if m.sidebarOpen && !m.docked() {
		mainCol = m.renderOverlay()
	} else {
		mainCol = lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			m.renderStatus(),
			m.renderInput(),
		)
	}

	body := mainCol
	if m.docked() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), mainCol)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderOverlay shows the sidebar in place of the conversation.
func (m Model) renderOverlay() string {
	bodyHeight := m.height - lipgloss.Height(m.header.View())
	hint := m.theme.InputHint.Render("esc to close")
	content := lipgloss.JoinVertical(lipgloss.Left, m.sidebar.View(), hint)
	return lipgloss.Place(m.mainWidth(), max(bodyHeight, 1), lipgloss.Left, lipgloss.Top, content)
}

// renderStatus is the line between conversation and input: spinner,
// slash command notice, or the help panel.
func (m Model) renderStatus() string {
	if m.showHelp {
		lines := []string{m.theme.SectionTitle.UnsetMarginTop().Render("Keys")}
		for _, l := range HelpLines(m.keys) {
			lines = append(lines, m.theme.SidebarText.Render(l))
		}
		return strings.Join(lines, "\n")
	}
	if v := m.spinner.View(); v != "" {
		return v
	}
	if m.notice != "" {
		return m.theme.ErrorText.Render(m.notice)
	}
	return ""
}

func (m Model) renderInput() string {
	box := m.theme.InputContainer.Width(m.mainWidth()).Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, box, m.theme.InputHint.Render(InputHint))
}
