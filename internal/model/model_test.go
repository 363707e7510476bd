// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"user", RoleUser},
		{"User", RoleUser},
		{"USER", RoleUser},
		{" user ", RoleUser},
		{"assistant", RoleAssistant},
		{"ASSISTANT", RoleAssistant},
		{"system", RoleAssistant},
		{"", RoleAssistant},
	}

	for _, tc := range tests {
		if got := ParseRole(tc.in); got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleDisplayName(t *testing.T) {
	if got := RoleUser.DisplayName(); got != "You" {
		t.Errorf("RoleUser.DisplayName() = %q, want %q", got, "You")
	}
	if got := RoleAssistant.DisplayName(); got != "Assistant" {
		t.Errorf("RoleAssistant.DisplayName() = %q, want %q", got, "Assistant")
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestConvertHistory(t *testing.T) {
	var records []HistoryRecord
	data := `[
		{"messageType": "User", "content": "hi"},
		{"messageType": "Assistant", "text": "hello"}
	]`
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	got := ConvertHistory(records, at)

	want := []Message{
		{Role: RoleUser, Content: "hi", Timestamp: at},
		{Role: RoleAssistant, Content: "hello", Timestamp: at},
	}
	if len(got) != len(want) {
		t.Fatalf("ConvertHistory() returned %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestConvertHistory_DropsEmptyBodies(t *testing.T) {
	records := []HistoryRecord{
		{MessageType: "USER"},
		{MessageType: "ASSISTANT", Content: "", Text: ""},
		{MessageType: "ASSISTANT", Text: "kept"},
	}

	got := ConvertHistory(records, time.Now())
	if len(got) != 1 {
		t.Fatalf("ConvertHistory() returned %d messages, want 1", len(got))
	}
	if got[0].Content != "kept" {
		t.Errorf("Content = %q, want %q", got[0].Content, "kept")
	}
}

func TestHistoryRecord_ContentWinsOverText(t *testing.T) {
	rec := HistoryRecord{MessageType: "USER", Content: "content", Text: "text"}
	if got := rec.Body(); got != "content" {
		t.Errorf("Body() = %q, want %q", got, "content")
	}
}

func TestHistoryRecord_RoleFallback(t *testing.T) {
	tests := []struct {
		name string
		rec  HistoryRecord
		want Role
	}{
		{"messageType user", HistoryRecord{MessageType: "USER"}, RoleUser},
		{"role user", HistoryRecord{Role: "user"}, RoleUser},
		{"messageType wins", HistoryRecord{MessageType: "ASSISTANT", Role: "user"}, RoleAssistant},
		{"system maps to assistant", HistoryRecord{MessageType: "SYSTEM"}, RoleAssistant},
		{"nothing maps to assistant", HistoryRecord{}, RoleAssistant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.Kind(); got != tc.want {
				t.Errorf("Kind() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHistoryRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    HistoryRecord
		wantErr bool
	}{
		{
			name: "spring ai shape",
			data: `{"messageType":"USER","text":"hi","metadata":{"messageType":"USER"},"media":[]}`,
			want: HistoryRecord{MessageType: "USER", Text: "hi"},
		},
		{
			name: "null fields",
			data: `{"messageType":null,"role":"user","content":null,"text":"x"}`,
			want: HistoryRecord{Role: "user", Text: "x"},
		},
		{
			name:    "not an object",
			data:    `"hello"`,
			wantErr: true,
		},
		{
			name:    "numeric content",
			data:    `{"content": 42}`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got HistoryRecord
			err := json.Unmarshal([]byte(tc.data), &got)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

// =============================================================================
// STATS TESTS
// =============================================================================

func TestQuickStats(t *testing.T) {
	var zero QuickStats
	if !zero.IsZero() {
		t.Error("zero QuickStats should report IsZero")
	}
	if !zero.NetPositive() {
		t.Error("zero net should be positive")
	}

	neg := QuickStats{TotalIncome: 10, TotalExpenses: 25, NetAmount: -15}
	if neg.NetPositive() {
		t.Error("negative net should not be positive")
	}
}

func TestWelcome(t *testing.T) {
	at := time.Now()
	w := Welcome(at)
	if !w.IsAssistant() {
		t.Errorf("Welcome() role = %q, want assistant", w.Role)
	}
	if w.Content != WelcomeText {
		t.Error("Welcome() content does not match WelcomeText")
	}
	if !w.Timestamp.Equal(at) {
		t.Errorf("Welcome() timestamp = %v, want %v", w.Timestamp, at)
	}
}
