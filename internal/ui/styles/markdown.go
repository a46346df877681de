// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders assistant replies for the terminal front ends.
// A nil *Markdown, or one whose renderer failed to build, returns text unchanged.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown builds a renderer for mode that wraps at width columns.
func NewMarkdown(m Mode, width int) *Markdown {
	if width < 20 {
		width = 20
	}
	style := "light"
	if m.IsDark() {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Markdown{width: width}
	}
	return &Markdown{renderer: r, width: width}
}

// Width returns the wrap width.
func (md *Markdown) Width() int {
	if md == nil {
		return 0
	}
	return md.width
}

// Render returns text as styled terminal output.
func (md *Markdown) Render(text string) string {
	if md == nil || md.renderer == nil {
		return text
	}
	out, err := md.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
