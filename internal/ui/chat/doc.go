// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen Bubble Tea model for the budget assistant.

The model is a thin view over a *session.Session: it forwards user intent
(send, clear, refresh) to the session as tea.Cmds and re-renders from
Session.Snapshot whenever the session signals a change. The only state the
model owns itself is the input text, the scroll position, whether the
sidebar overlay is open, and the latest backend probe results.

# Files

  - model.go: Model, Options, Init/Update and input handling
  - view.go: layout and rendering
  - keys.go: KeyMap and help text
  - messages.go: tea.Msg types
  - commands.go: tea.Cmds that call into the session and probes

# Layout

At DockBreakpoint columns or more the sidebar is docked on the left. On
narrower terminals it is hidden and ctrl+b opens it as an overlay; esc
closes it again.
*/
package chat
