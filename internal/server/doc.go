// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides an in-memory stand-in for the budget chat backend.
//
// It serves the same HTTP surface the client consumes, so the TUI, the
// REPL and integration tests can run without the real assistant:
//
//   - POST   /api/chat/message                   - rule-based assistant reply
//   - GET    /api/chat/history                   - conversation memory
//   - DELETE /api/chat/memory                    - forget the conversation
//   - GET    /api/transactions/totals/{y}/{m}    - monthly income/expense totals
//   - GET    /api/health                         - plain-text liveness
//   - GET    /api/mcp/status                     - plain-text tool status
//
// The assistant understands a handful of phrasings ("Add $50 expense for
// groceries", "Create a $300 budget for rent", "Show my budgets") and keeps
// budgets and transactions in memory. Replies use the same wording as the
// real budget tools.
package server
