// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"math"
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1234.5, "$1,234.50"},
		{0, "$0.00"},
		{0.1, "$0.10"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-42, "-$42.00"},
		{-0.001, "$0.00"},
		{math.NaN(), "$0.00"},
		{math.Inf(1), "$0.00"},
	}

	for _, tc := range tests {
		if got := Currency(tc.amount); got != tc.want {
			t.Errorf("Currency(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 4, 5, 0, time.Local)
	if got := Time(ts); got != "3:04:05 PM" {
		t.Errorf("Time() = %q, want %q", got, "3:04:05 PM")
	}

	morning := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	if got := Time(morning); got != "9:30:00 AM" {
		t.Errorf("Time() = %q, want %q", got, "9:30:00 AM")
	}
}

func TestLongDate(t *testing.T) {
	ts := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := LongDate(ts); got != "March 2025" {
		t.Errorf("LongDate() = %q, want %q", got, "March 2025")
	}
}
