// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/transcript"
)

// MarkdownExporter writes a conversation as Markdown. Message bodies are
// already Markdown (assistant) or plain text (user) and are copied as is.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts conv to Markdown.
func (e *MarkdownExporter) Export(conv *transcript.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, ErrEmpty
	}

	title := conv.Preview
	if title == "" {
		title = "Budget conversation"
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", escapeYAML(title))
	fmt.Fprintf(&sb, "session: %s\n", conv.ID)
	fmt.Fprintf(&sb, "backend: %s\n", escapeYAML(conv.APIBase))
	fmt.Fprintf(&sb, "date: %s\n", conv.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "messages: %d\n", len(conv.Messages))
	fmt.Fprintf(&sb, "exported: %s\n", e.options.now().Format(time.RFC3339))
	sb.WriteString("generator: budgetchat\n")
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title))
	fmt.Fprintf(&sb, "*%s*\n\n", format.LongDate(conv.StartedAt))

	for i, msg := range conv.Messages {
		label := msg.Role.DisplayName()
		if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, format.Time(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		body := strings.TrimSpace(msg.Content)
		if msg.IsUser() {
			body = quote(body)
		}
		sb.WriteString(body)
		sb.WriteString("\n\n")

		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// quote renders user text as a blockquote so it is never read as markup.
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "> " + escapeMarkdown(l)
	}
	return strings.Join(lines, "\n")
}

// escapeMarkdown escapes characters that change inline formatting.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"#", `\#`,
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
		"`", "\\`",
	)
	return r.Replace(s)
}

// escapeYAML quotes a frontmatter value when it could break the YAML.
func escapeYAML(s string) string {
	if s == "" || strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") ||
		strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		s = strings.ReplaceAll(s, "\n", `\n`)
		s = strings.ReplaceAll(s, "\r", `\r`)
		return `"` + s + `"`
	}
	return s
}
