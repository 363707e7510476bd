// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns assistant markdown into terminal text wrapped at width.
type MarkdownRenderer interface {
	Render(md string, width int) string
}

// Glamour style names accepted by NewGlamourRenderer.
const (
	MarkdownAuto  = "auto"
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownNoTTY = "notty"
)

// minMarkdownWidth keeps glamour from wrapping every word on its own line.
const minMarkdownWidth = 20

// GlamourRenderer renders markdown with glamour, caching one renderer per width.
type GlamourRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer for the given style ("auto",
// "dark", "light" or "notty"). Unknown styles fall back to auto detection.
func NewGlamourRenderer(style string) *GlamourRenderer {
	style = strings.ToLower(strings.TrimSpace(style))
	switch style {
	case MarkdownDark, MarkdownLight, MarkdownNoTTY:
	default:
		style = MarkdownAuto
	}
	return &GlamourRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Style returns the glamour style in use.
func (g *GlamourRenderer) Style() string {
	return g.style
}

// Render returns md rendered at width. If glamour fails the raw text is
// returned so a reply is never lost.
func (g *GlamourRenderer) Render(md string, width int) string {
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	r, err := g.renderer(width)
	if err != nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func (g *GlamourRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.renderers[width]; ok {
		return r, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if g.style != MarkdownAuto {
		styleOpt = glamour.WithStandardStyle(g.style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	g.renderers[width] = r
	return r, nil
}

// PlainRenderer leaves markdown untouched. Used when markdown is disabled.
type PlainRenderer struct{}

// Render returns md unchanged.
func (PlainRenderer) Render(md string, _ int) string {
	return md
}
