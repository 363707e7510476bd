// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by budgetchat packages.
//
//   - AtomicWriteFile: crash-safe file writes (config, exports)
//   - Truncate, Width, PadRight: display-width aware text helpers for the
//     sidebar and header, built on go-runewidth so emoji and CJK text
//     occupy the right number of cells
package util
