// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for budgetchat.
//
// Configuration is read from TOML (preferred) or JSON, layered as:
//
//  1. Built-in defaults (Default)
//  2. ~/.budgetchat/config.toml, or config.json
//  3. A .env file in the working directory (never overrides the real environment)
//  4. Environment variables (ApplyEnvOverrides)
//
// The config directory can be moved with BUDGETCHAT_HOME. Watch re-loads
// the file on change so the UI can pick up display settings live.
//
// There is no package-level configuration state: main loads a *Config and
// passes it to whatever needs it.
package config
