// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ollama"
)

// RenderPrompt maps each turn, in order, to one role-tagged message. The
// whole history is sent; nothing is truncated or summarized.
func RenderPrompt(snapshot []model.Turn) []ollama.Message {
	msgs := make([]ollama.Message, 0, len(snapshot))
	for _, turn := range snapshot {
		msgs = append(msgs, ollama.Message{
			Role:    turn.Role.String(),
			Content: turn.Text,
		})
	}
	return msgs
}
