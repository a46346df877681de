// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MODE TESTS
// =============================================================================

func TestMode_Toggle(t *testing.T) {
	if ModeLight.Toggle() != ModeDark {
		t.Error("light should toggle to dark")
	}
	if ModeDark.Toggle() != ModeLight {
		t.Error("dark should toggle to light")
	}
	if ModeLight.Toggle().Toggle() != ModeLight {
		t.Error("double toggle should return to light")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"light", ModeLight, false},
		{"DARK", ModeDark, false},
		{" dark ", ModeDark, false},
		{"", ModeLight, false},
		{"sepia", ModeLight, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMode_Auto(t *testing.T) {
	got, err := ParseMode("auto")
	if err != nil {
		t.Fatalf("ParseMode(auto) error = %v", err)
	}
	if got != ModeLight && got != ModeDark {
		t.Errorf("ParseMode(auto) = %q, want light or dark", got)
	}
}

// =============================================================================
// PALETTE TESTS
// =============================================================================

func TestPaletteFor(t *testing.T) {
	if PaletteFor(ModeDark).Background != "#1a1a2e" {
		t.Errorf("dark background = %q", PaletteFor(ModeDark).Background)
	}
	if PaletteFor(ModeLight).Background != "#f0f8ff" {
		t.Errorf("light background = %q", PaletteFor(ModeLight).Background)
	}
	if PaletteFor("bogus") != LightPalette {
		t.Error("unknown mode should use the light palette")
	}
}

func TestAdaptive(t *testing.T) {
	c := Adaptive(func(p Palette) string { return p.Header })
	if c.Light != "#32CD32" || c.Dark != "#b2e0f0" {
		t.Errorf("Adaptive(Header) = %+v", c)
	}
}

func TestCSS(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeLight, []string{"#f0f8ff", "#e6ffe6", "#00BFFF"}},
		{ModeDark, []string{"#1a1a2e", "#332a5a", "#90EE90"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			css := CSS(tt.mode)
			for _, w := range tt.want {
				if !strings.Contains(css, w) {
					t.Errorf("CSS(%s) missing %s", tt.mode, w)
				}
			}
			if strings.Contains(css, "{{") {
				t.Error("CSS contains unexpanded template actions")
			}
		})
	}
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	dark := NewTheme(ModeDark)
	if dark.Mode != ModeDark || dark.Palette != DarkPalette {
		t.Errorf("NewTheme(dark) = mode %q", dark.Mode)
	}

	fallback := NewTheme("bogus")
	if fallback.Mode != ModeLight {
		t.Errorf("NewTheme(bogus) mode = %q, want light", fallback.Mode)
	}

	if out := dark.UserBubble.Render("Hello"); !strings.Contains(out, "Hello") {
		t.Errorf("UserBubble.Render() = %q", out)
	}
}

func TestTheme_SetSize(t *testing.T) {
	th := NewTheme(ModeLight)

	th.SetSize(100, 40)
	if th.BubbleWidth() != 92 {
		t.Errorf("BubbleWidth() = %d, want 92", th.BubbleWidth())
	}

	th.SetSize(10, 5)
	if th.BubbleWidth() != 20 {
		t.Errorf("BubbleWidth() narrow = %d, want 20", th.BubbleWidth())
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestSpinnerConfig(t *testing.T) {
	if DotsSpinner.Duration() != time.Second/6 {
		t.Errorf("Duration() = %v", DotsSpinner.Duration())
	}
	if (SpinnerConfig{}).Duration() != time.Second {
		t.Error("zero FPS should give one second per frame")
	}
	if (SpinnerConfig{}).Frame(time.Now()) != "" {
		t.Error("empty spinner should render nothing")
	}

	frame := ThinkingSpinner.Frame(time.Unix(0, 0))
	if frame != ThinkingSpinner.Frames[0] {
		t.Errorf("Frame(epoch) = %q, want first frame", frame)
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown(ModeDark, 60)
	if md.Width() != 60 {
		t.Errorf("Width() = %d, want 60", md.Width())
	}

	out := md.Render("Some **bold** words")
	if !strings.Contains(out, "bold") {
		t.Errorf("Render() lost text: %q", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("Render() left markdown markers: %q", out)
	}

	if NewMarkdown(ModeLight, 5).Width() != 20 {
		t.Error("narrow width should clamp to 20")
	}

	var nilMD *Markdown
	if nilMD.Render("plain") != "plain" {
		t.Error("nil renderer should pass text through")
	}
}
