// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements budgetchat's non-TUI commands.
//
// Parse turns argv into a Command and Args; each Run* handler takes an Env
// built once by main and returns an error. main maps errors to exit codes
// with GetExitCode and prints them with DisplayError.
//
// Commands:
//   - chat: line-based REPL over the session view-model (liner history)
//   - ask, history, clear, stats, status: one-shot backend calls
//   - serve: the in-memory mock backend
//   - transcript: read the local SQLite transcript
//   - config: show, locate or create the config file
package cli
