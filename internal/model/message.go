// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps a backend role or message type to a Role.
// Only "user" (any case) is a user; everything else is the assistant.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleUser)) {
		return RoleUser
	}
	return RoleAssistant
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the conversation. Messages are never
// mutated after they are appended; the list is replaced wholesale on
// reload or memory clear.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a user message stamped at the given time.
func NewUserMessage(content string, at time.Time) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: at}
}

// NewAssistantMessage creates an assistant message stamped at the given time.
func NewAssistantMessage(content string, at time.Time) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: at}
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message came from the assistant.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}
