// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the terminal chat view for DeepThink.

The view is a Bubble Tea model over a single conversation session. It shows
the transcript in a scrolling viewport, a text input below it, and a spinner
while the model is producing a reply.

# Keys

  - Enter submits the input
  - Ctrl+N starts a new conversation
  - Ctrl+T toggles light and dark themes
  - Ctrl+S exports the conversation as Markdown to the working directory
  - PgUp/PgDn scroll the transcript
  - Ctrl+C quits

Typing is ignored while a reply is pending. Only one submission is in flight
per session at a time.

# Usage

	sess, _ := core.NewSession(core.NewInvoker(client), "", core.DefaultParams())
	if err := chat.Run(ctx, sess, styles.ModeDark); err != nil {
		log.Fatal(err)
	}
*/
package chat
