// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Send         key.Binding
	Newline      key.Binding
	Sidebar      key.Binding
	CloseSidebar key.Binding
	QuickActions []key.Binding
	ClearMemory  key.Binding
	RefreshStats key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "new line"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle sidebar"),
		),
		CloseSidebar: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close sidebar"),
		),
		ClearMemory: key.NewBinding(
			key.WithKeys(components.ClearMemoryKey),
			key.WithHelp(components.ClearMemoryKey, "clear memory"),
		),
		RefreshStats: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh stats"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	for _, a := range components.QuickActions {
		km.QuickActions = append(km.QuickActions, key.NewBinding(
			key.WithKeys(a.Key),
			key.WithHelp(a.Key, a.Label),
		))
	}
	return km
}

// Bindings returns every binding in display order.
func (k KeyMap) Bindings() []key.Binding {
	out := []key.Binding{k.Send, k.Newline, k.Sidebar, k.CloseSidebar}
	out = append(out, k.QuickActions...)
	return append(out, k.ClearMemory, k.RefreshStats, k.PageUp, k.PageDown, k.Quit)
}

// =============================================================================
// HELP TEXT
// =============================================================================

// SlashCommands are understood in the input box.
var SlashCommands = []struct {
	Name string
	Desc string
}{
	{"/clear", "clear conversation memory"},
	{"/stats", "refresh the budget overview"},
	{"/help", "show this help"},
	{"/quit", "exit"},
}

// HelpLines returns one "key  description" line per binding and slash command.
func HelpLines(k KeyMap) []string {
	var lines []string
	for _, b := range k.Bindings() {
		h := b.Help()
		lines = append(lines, padKey(h.Key)+h.Desc)
	}
	for _, c := range SlashCommands {
		lines = append(lines, padKey(c.Name)+c.Desc)
	}
	return lines
}

func padKey(k string) string {
	const width = 12
	for len(k) < width {
		k += " "
	}
	return k
}
