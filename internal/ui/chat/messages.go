// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	core "github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
)

// =============================================================================
// REPLY MESSAGES
// =============================================================================

// ReplyMsg carries the result of one submission back to the view.
type ReplyMsg struct {
	// Seq identifies the submission. Replies for an older Seq are stale.
	Seq  int
	Turn model.Turn
	Err  error
}

// SubmitCmd runs one submission against sess and reports the result.
func SubmitCmd(ctx context.Context, sess *core.Session, text string, seq int) tea.Cmd {
	return func() tea.Msg {
		turn, err := sess.Submit(ctx, text)
		return ReplyMsg{Seq: seq, Turn: turn, Err: err}
	}
}
