// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "User"},
		{RoleAssistant, "DeepThink"},
		{RoleSystem, "System"},
		{Role("tool"), "tool"},
	}

	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			if got := tc.role.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"system", "user", "assistant"} {
		if _, ok := ParseRole(s); !ok {
			t.Errorf("ParseRole(%q) should be valid", s)
		}
	}
	for _, s := range []string{"", "tool", "User"} {
		if _, ok := ParseRole(s); ok {
			t.Errorf("ParseRole(%q) should be invalid", s)
		}
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestNewTranscript_Seeded(t *testing.T) {
	tr := NewTranscript("hi there")

	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	seed := tr.Snapshot()[0]
	if seed.Role != RoleSystem {
		t.Errorf("seed role = %q, want system", seed.Role)
	}
	if seed.Text != "hi there" {
		t.Errorf("seed text = %q", seed.Text)
	}
}

func TestNewTranscript_DefaultGreeting(t *testing.T) {
	tr := NewTranscript("  ")
	if tr.Greeting() != DefaultGreeting {
		t.Errorf("Greeting() = %q, want default", tr.Greeting())
	}
}

func TestTranscript_Append(t *testing.T) {
	tr := NewTranscript("")

	if !tr.Append(RoleUser, "Hello") {
		t.Fatal("Append(user, Hello) should succeed")
	}
	if !tr.Append(RoleAssistant, "Hi!") {
		t.Fatal("Append(assistant, Hi!) should succeed")
	}

	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	if snap[1].Role != RoleUser || snap[1].Text != "Hello" {
		t.Errorf("turn 1 = %+v", snap[1])
	}
	if snap[2].Role != RoleAssistant || snap[2].Text != "Hi!" {
		t.Errorf("turn 2 = %+v", snap[2])
	}
	if tr.Last().Text != "Hi!" {
		t.Errorf("Last() = %q", tr.Last().Text)
	}
}

func TestTranscript_AppendEmptyUserIgnored(t *testing.T) {
	tr := NewTranscript("")

	for _, text := range []string{"", " ", "\n\t"} {
		if tr.Append(RoleUser, text) {
			t.Errorf("Append(user, %q) should be ignored", text)
		}
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestTranscript_ResetIdempotent(t *testing.T) {
	tr := NewTranscript("seed")
	tr.Append(RoleUser, "X")
	tr.Append(RoleAssistant, "Y")

	tr.Reset()
	tr.Reset()

	if tr.Len() != 1 {
		t.Fatalf("Len() after reset = %d, want 1", tr.Len())
	}
	if got := tr.Snapshot()[0]; got.Role != RoleSystem || got.Text != "seed" {
		t.Errorf("seed after reset = %+v", got)
	}
}

func TestTranscript_SnapshotIsCopy(t *testing.T) {
	tr := NewTranscript("")
	tr.Append(RoleUser, "original")

	snap := tr.Snapshot()
	snap[1].Text = "mutated"
	snap = append(snap, NewTurn(RoleUser, "extra"))

	if tr.Snapshot()[1].Text != "original" {
		t.Error("mutating a snapshot changed the transcript")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTranscript_Exchanges(t *testing.T) {
	tr := NewTranscript("")
	tr.Append(RoleUser, "A")
	tr.Append(RoleAssistant, "a")
	tr.Append(RoleUser, "B")
	tr.Append(RoleAssistant, "b")

	if got := tr.Exchanges(); got != 2 {
		t.Errorf("Exchanges() = %d, want 2", got)
	}
}
