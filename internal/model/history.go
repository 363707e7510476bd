// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// HISTORY RECORD
// =============================================================================

// HistoryRecord is one entry of the backend conversation memory.
//
// Two shapes are accepted:
//
//	{"messageType": "USER", "text": "..."}       chat memory message
//	{"role": "assistant", "content": "..."}      chat response shape
//
// messageType wins over role. content wins over text. Other fields are
// ignored. A record whose body is empty is not displayable.
type HistoryRecord struct {
	MessageType string `json:"messageType,omitempty"`
	Role        string `json:"role,omitempty"`
	Content     string `json:"content,omitempty"`
	Text        string `json:"text,omitempty"`
}

// UnmarshalJSON accepts string or null for each known field and rejects
// records that are not JSON objects or carry non-string known fields.
func (r *HistoryRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("history record: %w", err)
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"messageType", &r.MessageType},
		{"role", &r.Role},
		{"content", &r.Content},
		{"text", &r.Text},
	}

	*r = HistoryRecord{}
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("history record field %q: %w", f.name, err)
		}
	}
	return nil
}

// Kind returns the role the record maps to. Without a messageType the role
// field decides; the browser client treated such records as assistant.
func (r HistoryRecord) Kind() Role {
	if r.MessageType != "" {
		return ParseRole(r.MessageType)
	}
	return ParseRole(r.Role)
}

// Body returns content, falling back to text.
func (r HistoryRecord) Body() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Text
}

// Displayable reports whether the record has a body to show.
func (r HistoryRecord) Displayable() bool {
	return r.Body() != ""
}

// ToMessage converts the record, stamping it with the given display time.
// Original backend timestamps are not carried over.
func (r HistoryRecord) ToMessage(at time.Time) Message {
	return Message{Role: r.Kind(), Content: r.Body(), Timestamp: at}
}

// ConvertHistory converts backend records in order, dropping entries with
// no body. Every message gets the same display time.
func ConvertHistory(records []HistoryRecord, at time.Time) []Message {
	out := make([]Message, 0, len(records))
	for _, rec := range records {
		if !rec.Displayable() {
			continue
		}
		out = append(out, rec.ToMessage(at))
	}
	return out
}
