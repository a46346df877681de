// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversation turns and
// the transcript that holds them.
//
// # Key Types
//
//   - Role: turn role enumeration (system, user, assistant)
//   - Turn: one immutable role-tagged message
//   - Transcript: append-only, seeded history of turns for one session
//
// # Usage
//
//	tr := model.NewTranscript("Hello! How can I help?")
//	tr.Append(model.RoleUser, "Hi")
//	for _, turn := range tr.Snapshot() {
//	    fmt.Println(turn.Role.DisplayName(), turn.Text)
//	}
//
// Transcript is not safe for concurrent use; the owning chat.Session
// serializes access.
package model
