// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session keeps the live conversations of a running process.
//
// Each browser tab or terminal gets an explicit Handle carrying its chat
// session and presentation preferences. Nothing is stored globally; callers
// look handles up by ID and the registry expires idle ones.
//
// # Key Types
//
//   - Registry: concurrent map of live handles with idle expiry
//   - Handle: one conversation plus its theme and activity timestamps
//   - Factory: builds the chat session for a new handle
//
// # Usage
//
//	reg := session.NewRegistry(session.DefaultConfig(), factory)
//	go reg.Run(ctx)
//
//	h, err := reg.Create()
//	...
//	if h, ok := reg.Get(id); ok {
//	    h.Chat.Submit(ctx, text)
//	}
//
// # Expiry
//
// Sessions idle longer than Config.IdleTimeout are ended by Sweep, which
// Run calls on every tick. A zero timeout keeps sessions until End.
package session
