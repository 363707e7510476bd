// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format converts amounts and times into display strings.
//
// Amounts are rendered as US dollars with en-US digit grouping. Times use
// the en-US 12-hour clock and dates the "Month YYYY" form.
package format
