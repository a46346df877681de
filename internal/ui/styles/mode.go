// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Mode is a presentation mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"

	// ModeAuto is only accepted by ParseMode; it resolves to light or dark.
	ModeAuto Mode = "auto"
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool {
	return m == ModeDark
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name. "auto" detects the terminal background.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight, "":
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	case ModeAuto:
		return DetectMode(), nil
	default:
		return ModeLight, fmt.Errorf("unknown theme %q (want light, dark or auto)", s)
	}
}

// DetectMode picks a mode from the terminal's background color.
func DetectMode() Mode {
	if termenv.HasDarkBackground() {
		return ModeDark
	}
	return ModeLight
}
