// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// QuickStats is the income/expense summary for one calendar month.
// A snapshot is replaced, never merged, on each fetch.
type QuickStats struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetAmount     float64 `json:"netAmount"`
}

// IsZero reports whether no figures have been recorded.
func (s QuickStats) IsZero() bool {
	return s.TotalIncome == 0 && s.TotalExpenses == 0 && s.NetAmount == 0
}

// NetPositive reports whether the net amount is zero or above.
func (s QuickStats) NetPositive() bool {
	return s.NetAmount >= 0
}
