// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/model"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// maxStatusBody bounds how much of a plain-text probe body is read.
const maxStatusBody = 4096

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the API root including the /api prefix (default: http://localhost:8080/api)
	BaseURL string

	// Timeout bounds each request. Zero leaves timing to the network stack
	// and the caller's context.
	Timeout time.Duration

	// HTTPClient overrides the underlying client (tests, custom transports).
	HTTPClient *http.Client

	// Logger receives request-level debug logs. Nil disables logging.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the budget chat backend.
//
// The Client is safe for concurrent use. It holds no conversation state;
// all state lives in the backend and in the caller.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient creates a client for the default base URL.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        log,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// SendChatMessage posts a user message and returns the assistant reply.
func (c *Client) SendChatMessage(ctx context.Context, message string) (*ChatResponse, error) {
	var result ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/message", ChatRequest{Message: message}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetChatHistory returns the backend conversation memory, oldest first.
// The caller decides which records are displayable.
func (c *Client) GetChatHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	var records []model.HistoryRecord
	if err := c.doJSON(ctx, http.MethodGet, "/chat/history", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ClearChatMemory deletes the backend conversation memory.
func (c *Client) ClearChatMemory(ctx context.Context) (*ClearResponse, error) {
	var result ClearResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/chat/memory", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetQuickStats returns income and expense totals for a calendar month.
func (c *Client) GetQuickStats(ctx context.Context, year, month int) (*model.QuickStats, error) {
	var stats model.QuickStats
	path := fmt.Sprintf("/transactions/totals/%d/%d", year, month)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// =============================================================================
// STATUS PROBES
// =============================================================================

// HealthCheck probes backend liveness.
func (c *Client) HealthCheck(ctx context.Context) (*StatusResponse, error) {
	return c.status(ctx, "/health")
}

// MCPStatus reports whether the backend has its budget tools available.
func (c *Client) MCPStatus(ctx context.Context) (*StatusResponse, error) {
	return c.status(ctx, "/mcp/status")
}

// status fetches a probe endpoint. JSON {"status": ...} is decoded; any
// other body is returned verbatim (trimmed) as the status.
func (c *Client) status(ctx context.Context, path string) (*StatusResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStatusBody))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}

	var result StatusResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Status != "" {
		return &result, nil
	}
	return &StatusResponse{Status: strings.TrimSpace(string(body))}, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// do sends the request and returns the response for any 2xx status. The
// caller closes the body.
func (c *Client) do(ctx context.Context, method, path string, in interface{}) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "error", err)
		if errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err) {
			return nil, &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}

	c.log.Debugw("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp.Body)
		return nil, newHTTPError(resp.StatusCode)
	}
	return resp, nil
}

// isNetTimeout reports whether err is a transport timeout.
func isNetTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, maxStatusBody))
	r.Close()
}
