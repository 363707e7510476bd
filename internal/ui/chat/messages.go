// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// sessionChangedMsg means the session state moved; re-read the snapshot.
type sessionChangedMsg struct{}

// sessionInitDoneMsg is sent once the initial stats and history loads settle.
type sessionInitDoneMsg struct{}

// sendDoneMsg reports whether a send was accepted by the session.
type sendDoneMsg struct {
	Accepted bool
}

// clearDoneMsg follows a memory clear.
type clearDoneMsg struct{}

// statsRefreshedMsg follows an explicit stats refresh.
type statsRefreshedMsg struct{}

// =============================================================================
// PROBE MESSAGES
// =============================================================================

// healthMsg carries the result of the health and MCP probes.
type healthMsg struct {
	Status components.BackendStatus
	MCP    string
}

// healthTickMsg triggers the next periodic probe.
type healthTickMsg struct{}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration re-read from disk. Only the
// [ui] settings are applied while running.
type ConfigReloadedMsg struct {
	Config *config.Config
}
