// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// ThinkingMessage is shown while a reply is pending.
const ThinkingMessage = "Pondering the vastness of knowledge..."

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame to show at t.
func (s SpinnerConfig) Frame(t time.Time) string {
	if len(s.Frames) == 0 {
		return ""
	}
	i := int(t.UnixNano()/int64(s.Duration())) % len(s.Frames)
	return s.Frames[i]
}

// ThinkingSpinner - sparkle pulse
var ThinkingSpinner = SpinnerConfig{
	Frames: []string{"✦", "✧", "·", "✧"},
	FPS:    6,
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}
