// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the terminal front ends.
type Theme struct {
	Mode         Mode
	Palette      Palette
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	Prompt  lipgloss.Style
	Pending lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme creates a theme for m with all styles configured.
func NewTheme(m Mode) *Theme {
	if m != ModeDark {
		m = ModeLight
	}
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		Mode:         m,
		Palette:      PaletteFor(m),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Width:        80,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette
	text := lipgloss.Color(p.Text)
	border := lipgloss.Color(p.Border)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Header)).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Header))

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(text).
		Italic(true)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Focus))

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Header))

	t.UserBubble = lipgloss.NewStyle().
		Foreground(text).
		Background(lipgloss.Color(p.UserBubble)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(text).
		Background(lipgloss.Color(p.BotBubble)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = t.AssistantBubble.
		BorderForeground(Rose)

	t.Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Button))

	t.Pending = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(p.Focus))

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Error = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.applyWidth()
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
	t.applyWidth()
}

// BubbleWidth is the content width available inside a bubble.
func (t *Theme) BubbleWidth() int {
	// margin 4, border 2, padding 2
	w := t.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func (t *Theme) applyWidth() {
	w := t.BubbleWidth()
	t.UserBubble = t.UserBubble.Width(w)
	t.AssistantBubble = t.AssistantBubble.Width(w)
	t.ErrorBubble = t.ErrorBubble.Width(w)
	t.Header = t.Header.Width(t.Width)
}
