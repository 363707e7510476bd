// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import "time"

const (
	timeLayout     = "3:04:05 PM"
	longDateLayout = "January 2006"
)

// Time renders the clock time of a message, e.g. "3:04:05 PM".
func Time(t time.Time) string {
	return t.Local().Format(timeLayout)
}

// LongDate renders a month heading, e.g. "March 2025".
func LongDate(t time.Time) string {
	return t.Format(longDateLayout)
}
