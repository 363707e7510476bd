// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jeranaias/budgetchat-tui/internal/model"
)

// ChatRequest is the body of POST /chat/message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant reply to a chat message.
type ChatResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Success   *bool  `json:"success,omitempty"`
}

// Time returns the reply time, or fallback when the backend sent none.
func (r *ChatResponse) Time(fallback time.Time) time.Time {
	if r.Timestamp <= 0 {
		return fallback
	}
	return time.UnixMilli(r.Timestamp)
}

// ToMessage converts the reply into an assistant message.
func (r *ChatResponse) ToMessage(fallback time.Time) model.Message {
	return model.NewAssistantMessage(r.Content, r.Time(fallback))
}

// ClearResponse is the body of DELETE /chat/memory.
type ClearResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the health and MCP probes. Backends that
// answer in plain text have the trimmed body placed in Status.
type StatusResponse struct {
	Status string `json:"status"`
}
