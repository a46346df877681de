// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds configuration for the session registry.
type Config struct {
	// IdleTimeout ends sessions with no activity for this long (default: 30 minutes).
	// Zero disables expiry.
	IdleTimeout time.Duration

	// SweepInterval is how often Run checks for idle sessions (default: 1 minute)
	SweepInterval time.Duration

	// Theme is the presentation mode given to new sessions (default: light)
	Theme styles.Mode
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   30 * time.Minute,
		SweepInterval: time.Minute,
		Theme:         styles.ModeLight,
	}
}

// Factory builds the chat session for a new handle.
type Factory func() (*chat.Session, error)

// =============================================================================
// HANDLE
// =============================================================================

// Handle is one live conversation.
type Handle struct {
	ID   string
	Chat *chat.Session

	mu           sync.Mutex
	theme        styles.Mode
	createdAt    time.Time
	lastActivity time.Time
}

// Theme returns the handle's presentation mode.
func (h *Handle) Theme() styles.Mode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

// SetTheme changes the handle's presentation mode.
func (h *Handle) SetTheme(m styles.Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.theme = m
}

// ToggleTheme flips between light and dark and returns the new mode.
func (h *Handle) ToggleTheme() styles.Mode {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.theme = h.theme.Toggle()
	return h.theme
}

// CreatedAt returns when the handle was created.
func (h *Handle) CreatedAt() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.createdAt
}

// LastActivity returns the time of the most recent lookup.
func (h *Handle) LastActivity() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastActivity
}

func (h *Handle) touch(now time.Time) {
	h.mu.Lock()
	h.lastActivity = now
	h.mu.Unlock()
}

// Status is a point-in-time view of a handle.
type Status struct {
	ID       string        `json:"id"`
	Theme    styles.Mode   `json:"theme"`
	State    string        `json:"state"`
	Turns    int           `json:"turns"`
	Started  time.Time     `json:"started"`
	IdleTime time.Duration `json:"idle_ns"`
}

// GetStatus returns the current status of the handle.
func (h *Handle) GetStatus() Status {
	h.mu.Lock()
	st := Status{
		ID:       h.ID,
		Theme:    h.theme,
		Started:  h.createdAt,
		IdleTime: time.Since(h.lastActivity),
	}
	h.mu.Unlock()

	st.State = h.Chat.State().String()
	st.Turns = h.Chat.Len()
	return st
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry tracks live handles by ID. It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
	config  Config
	factory Factory
	now     func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config, factory Factory) *Registry {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Theme == "" {
		cfg.Theme = styles.ModeLight
	}
	return &Registry{
		handles: make(map[string]*Handle),
		config:  cfg,
		factory: factory,
		now:     time.Now,
	}
}

// Create starts a new conversation and registers it under a fresh ID.
func (r *Registry) Create() (*Handle, error) {
	cs, err := r.factory()
	if err != nil {
		return nil, err
	}

	now := r.now()
	h := &Handle{
		ID:           uuid.New().String(),
		Chat:         cs,
		createdAt:    now,
		lastActivity: now,
	}

	r.mu.Lock()
	h.theme = r.config.Theme
	r.handles[h.ID] = h
	count := len(r.handles)
	r.mu.Unlock()

	log.Printf("SESSION_CREATED | id=%s sessions=%d", h.ID, count)
	return h, nil
}

// Get returns the handle for id and records activity on it.
func (r *Registry) Get(id string) (*Handle, bool) {
	r.mu.Lock()
	h, ok := r.handles[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	h.touch(r.now())
	return h, true
}

// End tears down the session for id. It reports whether one existed.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	h, ok := r.handles[id]
	delete(r.handles, id)
	r.mu.Unlock()

	if ok {
		h.Chat.Reset()
		log.Printf("SESSION_ENDED | id=%s reason=closed", id)
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// SetTheme changes the default theme for sessions created from now on.
func (r *Registry) SetTheme(m styles.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Theme = m
}

// =============================================================================
// EXPIRY
// =============================================================================

// Sweep ends every session idle for at least the configured timeout and
// returns how many were ended. A session awaiting a reply is never idle.
func (r *Registry) Sweep() int {
	if r.config.IdleTimeout <= 0 {
		return 0
	}

	now := r.now()
	var expired []*Handle

	r.mu.Lock()
	for id, h := range r.handles {
		if h.Chat.State() == chat.StateAwaitingReply {
			continue
		}
		if now.Sub(h.LastActivity()) >= r.config.IdleTimeout {
			expired = append(expired, h)
			delete(r.handles, id)
		}
	}
	r.mu.Unlock()

	// Reset outside the registry lock; an in-flight reply will be discarded.
	for _, h := range expired {
		h.Chat.Reset()
		log.Printf("SESSION_ENDED | id=%s reason=idle idle=%s", h.ID, FormatDuration(now.Sub(h.LastActivity())))
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
