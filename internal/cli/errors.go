// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for budgetchat commands.
//
// Commands always return errors; main decides how to display them and
// which exit code to use.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/transcript"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitNetworkError  = 5
	ExitNotFoundError = 7
	ExitTimeoutError  = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string
	Action  string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// ErrMissingArgument reports a required argument that was not given.
func ErrMissingArgument(argName, usage string) error {
	return &ValidationError{Field: argName, Reason: "required", Example: usage}
}

// =============================================================================
// DISPLAY AND EXIT CODES
// =============================================================================

// DisplayError writes err to w in the shared error style.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, styles.RenderError(err.Error()))

	switch {
	case api.IsConnection(err):
		fmt.Fprintln(w, DimStyle.Render("Is the backend running? Try: budgetchat serve"))
	case errors.As(err, new(config.ValidateErrors)):
		fmt.Fprintln(w, DimStyle.Render("Fix the config file or run: budgetchat config path"))
	}
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var configErr config.ValidateErrors
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	switch {
	case errors.Is(err, transcript.ErrNotFound):
		return ExitNotFoundError
	case api.IsTimeout(err):
		return ExitTimeoutError
	case api.IsConnection(err), api.IsHTTPError(err), api.IsInvalidResponse(err):
		return ExitNetworkError
	}
	return ExitGeneralError
}
