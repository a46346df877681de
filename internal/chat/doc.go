// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat drives one conversation: it turns the transcript into a
// prompt, invokes the completion endpoint, and folds the outcome back into
// the transcript as an assistant turn.
//
// # Key Types
//
//   - Params: per-session sampling parameters (model, temperature)
//   - Invoker: one non-streaming round trip per call, errors folded to text
//   - Session: the Idle / AwaitingReply turn-taking state machine
//
// # Usage
//
//	inv := chat.NewInvoker(ollama.NewClient())
//	sess, err := chat.NewSession(inv, model.DefaultGreeting, chat.DefaultParams())
//	reply, err := sess.Submit(ctx, "Hello")
//	if errors.Is(err, chat.ErrBusy) {
//	    // a reply is still being produced
//	}
package chat
