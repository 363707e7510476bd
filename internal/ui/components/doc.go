// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the budget chat TUI.

Every component takes a *styles.Theme and renders to a string; none of them
own application state. The chat model feeds them a session snapshot on each
frame.

# Display Components

Header (header.go) - Title, current month, backend status and MCP line.
Sidebar (sidebar.go) - Budget overview, quick actions, chat memory and examples.
MessageView (message.go) - User and assistant bubbles with timestamps.
MarkdownRenderer (markdown.go) - Glamour rendering for assistant replies.

# Feedback

Spinner (spinner.go) - "AI is thinking..." and history loading indicators.

# Usage

	theme := styles.NewTheme("auto")
	header := components.NewHeader(theme)
	header.SetWidth(120)
	header.SetStatus(components.StatusOnline)
	view := header.View()
*/
package components
