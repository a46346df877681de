// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/util"
)

// =============================================================================
// STATE
// =============================================================================

// State is the turn-taking state of a session.
type State int

const (
	// StateIdle accepts a new submission.
	StateIdle State = iota

	// StateAwaitingReply has a user turn appended and a call in flight.
	StateAwaitingReply
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting_reply"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session owns one transcript and its request parameters, and enforces
// strict alternation: at most one reply is in flight at a time.
//
// Session is safe for concurrent use. The lock is not held during the
// completion call, so Snapshot and Reset stay responsive while a reply is
// pending.
type Session struct {
	mu         sync.Mutex
	invoker    *Invoker
	transcript *model.Transcript
	params     Params
	state      State

	// generation is bumped by Reset so an in-flight reply can tell that the
	// transcript it was built from is gone.
	generation uint64
}

// NewSession creates an idle session seeded with greeting.
func NewSession(inv *Invoker, greeting string, params Params) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		invoker:    inv,
		transcript: model.NewTranscript(greeting),
		params:     params,
	}, nil
}

// Submit appends text as a user turn, obtains the assistant reply, and
// appends it. On success the transcript has grown by exactly two turns and
// the reply turn is returned.
//
// Blank text returns ErrEmptySubmission and a submission while a reply is
// pending returns ErrBusy; neither changes the transcript. If Reset runs
// while the reply is pending, the reply is dropped and ErrDiscarded is
// returned. Completion failures are never returned: they arrive as the
// text of the reply turn.
func (s *Session) Submit(ctx context.Context, text string) (model.Turn, error) {
	return s.SubmitWith(ctx, text, Override{})
}

// SubmitWith is Submit with per-request parameter changes. The override is
// applied only once the submission is accepted; an invalid override, blank
// text or a pending reply leaves params and transcript untouched.
func (s *Session) SubmitWith(ctx context.Context, text string, o Override) (model.Turn, error) {
	if err := o.Validate(); err != nil {
		return model.Turn{}, err
	}
	text = util.NormalizeInput(text)
	if text == "" {
		return model.Turn{}, ErrEmptySubmission
	}

	s.mu.Lock()
	if s.state == StateAwaitingReply {
		s.mu.Unlock()
		return model.Turn{}, ErrBusy
	}
	s.params = o.apply(s.params)
	s.transcript.Append(model.RoleUser, text)
	s.state = StateAwaitingReply
	gen := s.generation
	snapshot := s.transcript.Snapshot()
	params := s.params
	s.mu.Unlock()

	reply := s.invoker.Reply(ctx, snapshot, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return reply, ErrDiscarded
	}
	s.transcript.Append(reply.Role, reply.Text)
	s.state = StateIdle
	return reply, nil
}

// Reset discards the conversation and returns to Idle with a fresh seed
// turn. It is valid in either state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Reset()
	s.state = StateIdle
	s.generation++
}

// Snapshot returns a copy of the transcript.
func (s *Session) Snapshot() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Snapshot()
}

// Len returns the number of turns in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Len()
}

// State returns the current turn-taking state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Params returns the current request parameters.
func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetTemperature changes the temperature used by subsequent calls.
func (s *Session) SetTemperature(t float64) error {
	if err := ValidateTemperature(t); err != nil {
		return err
	}
	s.mu.Lock()
	s.params.Temperature = t
	s.mu.Unlock()
	return nil
}

// SetModel changes the model used by subsequent calls.
func (s *Session) SetModel(m string) error {
	m = strings.TrimSpace(m)
	if m == "" {
		return ErrNoModel
	}
	s.mu.Lock()
	s.params.Model = m
	s.mu.Unlock()
	return nil
}
