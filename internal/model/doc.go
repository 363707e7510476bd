// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the budget chat client.
//
// # Key Types
//
//   - Message: one chat bubble with role, content and display timestamp
//   - Role: message author (user or assistant)
//   - QuickStats: monthly income/expense/net snapshot
//   - HistoryRecord: a backend history entry as accepted at the API boundary
//
// # Usage
//
// Convert backend history into the displayed conversation:
//
//	records, _ := client.GetChatHistory(ctx)
//	msgs := append([]model.Message{model.Welcome(now)},
//	    model.ConvertHistory(records, now)...)
package model
