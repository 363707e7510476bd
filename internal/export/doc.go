// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes recorded budget conversations to files.
//
// # Supported Formats
//
//   - Markdown: readable transcript with YAML frontmatter
//   - JSON: the full transcript.Conversation
//
// # Usage
//
//	exp, err := export.ForFormat("md", nil)
//	path, err := export.ToFile(conv, exp, &export.Options{OutputDir: "."})
package export
