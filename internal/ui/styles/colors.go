// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTES
// =============================================================================

// Palette is the set of colors for one mode, as hex strings.
type Palette struct {
	Background  string
	Text        string
	Header      string
	UserBubble  string
	BotBubble   string
	Border      string
	Button      string
	ButtonHover string
	Focus       string
}

// LightPalette - mint green accents on alice blue
var LightPalette = Palette{
	Background:  "#f0f8ff",
	Text:        "#333333",
	Header:      "#32CD32",
	UserBubble:  "#e6ffe6",
	BotBubble:   "#f5f5f5",
	Border:      "#a3d9a3",
	Button:      "#4CAF50",
	ButtonHover: "#45a049",
	Focus:       "#00BFFF",
}

// DarkPalette - deep indigo surfaces
var DarkPalette = Palette{
	Background:  "#1a1a2e",
	Text:        "#e0e0e0",
	Header:      "#b2e0f0",
	UserBubble:  "#332a5a",
	BotBubble:   "#2a2144",
	Border:      "#4c4c7a",
	Button:      "#4CAF50",
	ButtonHover: "#45a049",
	Focus:       "#90EE90",
}

// PaletteFor returns the palette of m.
func PaletteFor(m Mode) Palette {
	if m == ModeDark {
		return DarkPalette
	}
	return LightPalette
}

// =============================================================================
// ADAPTIVE COLORS
// =============================================================================

// Colors that follow the terminal background rather than the chosen mode.
var (
	// Rose - errors
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// TextMuted - hints, timestamps
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
)

// Adaptive builds an AdaptiveColor from the same field of both palettes.
func Adaptive(field func(Palette) string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: field(LightPalette),
		Dark:  field(DarkPalette),
	}
}
