// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for budgetchat.
//
// All colors use Lip Gloss AdaptiveColor so they follow the terminal's
// light or dark background. The theme mode can be forced with
// ApplyThemeMode ("dark", "light") or left on "auto".
//
// # Palette
//
//   - Purple: assistant accent, titles
//   - Cyan: brand, user highlights, key hints
//   - Emerald / Income: positive amounts, online status
//   - Rose / Expense: negative amounts, offline status, errors
//   - Amber: warnings, pending states
//
// # Layout
//
// DockBreakpoint is the terminal width at which the sidebar is docked next
// to the chat instead of opening as an overlay.
package styles
