// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat view-model: the message list, the
// sending and history-loading flags, and the month's quick stats.
//
// A Session orchestrates calls to the budget backend and derives the
// welcome and error messages. It has no terminal dependencies; the TUI,
// the REPL and tests all drive the same type.
//
// # Key Types
//
//   - Session: the view-model, safe for concurrent use
//   - State: an immutable snapshot handed to renderers
//   - Backend: the subset of the API client the session needs
//   - Recorder: optional sink for exchanged messages (transcript)
//
// # Usage
//
//	s := session.New(session.Config{Backend: client, Logger: log})
//	defer s.Close()
//	s.Init(ctx)             // stats and history, concurrently
//	s.Send(ctx, "I spent $25 on coffee today")
//	st := s.Snapshot()
//
// Errors from background refreshes and from clearing memory are logged and
// never surfaced. A failed send becomes an assistant message asking the
// user to check the backend.
package session
