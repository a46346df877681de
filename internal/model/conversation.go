// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// DefaultGreeting seeds every new or reset transcript.
const DefaultGreeting = "Hello! I am DeepThink AI. How can I assist you today? Feel free to ask anything!"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered history of turns for one session. Element 0 is
// always the system seed turn. Insertion order is conversation order and is
// replayed verbatim as prompt context, so turns are only ever appended or
// the whole sequence replaced by Reset.
//
// There is no size bound; history grows for the life of the session.
type Transcript struct {
	greeting string
	turns    []Turn
}

// NewTranscript creates a transcript seeded with a system turn carrying
// greeting. An empty greeting falls back to DefaultGreeting.
func NewTranscript(greeting string) *Transcript {
	if strings.TrimSpace(greeting) == "" {
		greeting = DefaultGreeting
	}
	t := &Transcript{greeting: greeting}
	t.Reset()
	return t
}

// =============================================================================
// MUTATION
// =============================================================================

// Append adds one turn to the end. A user turn with blank text is ignored
// and Append returns false; nothing else is validated at this layer.
func (t *Transcript) Append(role Role, text string) bool {
	if role == RoleUser && strings.TrimSpace(text) == "" {
		return false
	}
	t.turns = append(t.turns, NewTurn(role, text))
	return true
}

// Reset replaces the sequence with a fresh seed turn. Calling it on an
// already fresh transcript leaves it unchanged in shape.
func (t *Transcript) Reset() {
	t.turns = []Turn{NewTurn(RoleSystem, t.greeting)}
}

// =============================================================================
// QUERIES
// =============================================================================

// Snapshot returns a copy of the full ordered sequence.
func (t *Transcript) Snapshot() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns, including the seed.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Last returns the most recent turn.
func (t *Transcript) Last() Turn {
	return t.turns[len(t.turns)-1]
}

// Greeting returns the seed text.
func (t *Transcript) Greeting() string {
	return t.greeting
}

// Exchanges returns the number of user turns in the transcript.
func (t *Transcript) Exchanges() int {
	n := 0
	for _, turn := range t.turns {
		if turn.Role == RoleUser {
			n++
		}
	}
	return n
}
