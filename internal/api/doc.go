// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the budget chat backend.
//
// The backend exposes a small REST surface under a configurable base URL
// (default http://localhost:8080/api):
//
//	POST   /chat/message                   send a message, get the assistant reply
//	GET    /chat/history                   conversation memory
//	DELETE /chat/memory                    clear conversation memory
//	GET    /transactions/totals/{y}/{m}    monthly income/expense totals
//	GET    /health                         liveness probe
//	GET    /mcp/status                     tool availability probe
//
// Any non-2xx response becomes a *ClientError of type ErrTypeHTTP carrying
// the status code. Transport failures and malformed bodies are returned as
// *ClientError values wrapping the cause. Nothing is retried.
//
// # Usage
//
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.API.BaseURL})
//	resp, err := client.SendChatMessage(ctx, "Add $50 expense for groceries")
//	if api.IsHTTPError(err) {
//	    status, _ := api.StatusCode(err)
//	    ...
//	}
package api
