// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	// Status is the HTTP status code for ErrTypeHTTP errors, zero otherwise.
	Status int
	Cause  error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeHTTP
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeInvalidResponse
	ErrTypeRequest
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeHTTP:
		return "http"
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// newHTTPError builds the error for a non-2xx response.
func newHTTPError(status int) *ClientError {
	return &ClientError{
		Type:    ErrTypeHTTP,
		Message: fmt.Sprintf("HTTP error! status: %d", status),
		Status:  status,
	}
}

func isType(err error, t ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == t
	}
	return false
}

// IsHTTPError checks if an error is a non-2xx response.
func IsHTTPError(err error) bool {
	return isType(err, ErrTypeHTTP)
}

// IsConnection checks if an error means the backend could not be reached.
func IsConnection(err error) bool {
	return isType(err, ErrTypeConnection)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return isType(err, ErrTypeTimeout)
}

// IsInvalidResponse checks if the backend answered with an unreadable body.
func IsInvalidResponse(err error) bool {
	return isType(err, ErrTypeInvalidResponse)
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTP {
		return clientErr.Status, true
	}
	return 0, false
}
