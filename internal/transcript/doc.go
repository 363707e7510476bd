// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript keeps an optional local record of chat exchanges in a
// SQLite database (pure Go driver, no cgo).
//
// Each run of the TUI or REPL starts a session identified by a UUID; every
// user message and assistant reply is appended to it. The backend keeps its
// own memory, so the transcript is only for reading back past exchanges with
// `budgetchat transcript`.
package transcript
