// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger used across budgetchat.
//
// The full-screen UI owns stdout, so the default sink is a size-rotated
// file under the config directory. Line-oriented commands may log to
// stderr instead. Callers receive a *zap.SugaredLogger and use the
// key/value forms (Infow, Warnw, Errorw).
package logging
