// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/budgetchat-tui/internal/transcript"
	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// ErrEmpty is returned for a conversation without messages.
var ErrEmpty = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation into one file format.
type Exporter interface {
	Export(conv *transcript.Conversation) ([]byte, error)

	// FileExtension returns the extension including the dot (".md").
	FileExtension() string
}

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written (default ".")
	OutputDir string

	// IncludeTimestamps adds the time to each message heading.
	IncludeTimestamps bool

	// Now stamps the export (default time.Now)
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ForFormat returns the exporter for "md"/"markdown" or "json".
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ToFile exports conv with exporter into opts.OutputDir and returns the path.
// The file name is built from the session's first user message.
func ToFile(conv *transcript.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("budgetchat_%s_%s%s",
		sanitizeFilename(conv.Preview),
		conv.StartedAt.Local().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	path := filepath.Join(dir, name)

	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// sanitizeFilename maps s to a short name safe on every platform.
func sanitizeFilename(s string) string {
	const maxLen = 40

	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if n == maxLen {
			break
		}
		switch {
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		case r < 32 || r == 127 || strings.ContainsRune(`/\:*?"<>|$`, r):
			continue
		default:
			b.WriteRune(r)
		}
		n++
	}

	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "conversation"
	}
	return out
}
