// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ollama"
	"github.com/jeranaias/deepthink/internal/util"
)

// Completer is the completion endpoint. *ollama.Client satisfies it.
type Completer interface {
	Chat(ctx context.Context, model string, messages []ollama.Message, opts *ollama.Options) (*ollama.ChatResponse, error)
}

// Invoker performs completion calls against a Completer.
type Invoker struct {
	completer Completer
}

// NewInvoker creates an invoker backed by c.
func NewInvoker(c Completer) *Invoker {
	return &Invoker{completer: c}
}

// Invoke makes exactly one non-streaming call. There is no retry and no
// deadline beyond what ctx and the transport carry. Any failure, including
// an empty completion, is returned as *InvocationError.
func (inv *Invoker) Invoke(ctx context.Context, prompt []ollama.Message, params Params) (string, error) {
	resp, err := inv.completer.Chat(ctx, params.Model, prompt, params.options())
	if err != nil {
		return "", &InvocationError{Model: params.Model, Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Message.Content) == "" {
		return "", &InvocationError{Model: params.Model, Err: ErrEmptyCompletion}
	}
	return resp.Message.Content, nil
}

// Reply renders snapshot into a prompt, invokes the model, and returns the
// assistant turn to append. A failed call becomes an assistant turn whose
// text describes the failure; Reply itself never fails.
func (inv *Invoker) Reply(ctx context.Context, snapshot []model.Turn, params Params) model.Turn {
	start := time.Now()
	text, err := inv.Invoke(ctx, RenderPrompt(snapshot), params)
	if err != nil {
		log.Printf("INVOCATION_FAILED | model=%s turns=%d error=%s",
			params.Model, len(snapshot), util.TruncateRunes(err.Error(), 200))
		return model.NewTurn(model.RoleAssistant, FoldError(params.Model, err))
	}

	log.Printf("TURN_COMPLETE | model=%s turns=%d chars=%d duration=%s",
		params.Model, len(snapshot), util.RuneLen(text), time.Since(start).Round(time.Millisecond))
	return model.NewTurn(model.RoleAssistant, text)
}
