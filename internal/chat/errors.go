// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Session and Params.
var (
	// ErrEmptySubmission is returned when submitted text is blank.
	ErrEmptySubmission = errors.New("empty submission")

	// ErrBusy is returned when a submission arrives while a reply is pending.
	ErrBusy = errors.New("reply already in progress")

	// ErrDiscarded is returned when the session was reset while the reply
	// was being produced. The reply is dropped.
	ErrDiscarded = errors.New("reply discarded after reset")

	// ErrEmptyCompletion marks a response that carried no assistant text.
	ErrEmptyCompletion = errors.New("malformed response: empty completion")

	// ErrInvalidTemperature is returned for a temperature outside [0, 1].
	ErrInvalidTemperature = errors.New("temperature must be between 0.0 and 1.0")

	// ErrNoModel is returned when no model identifier is set.
	ErrNoModel = errors.New("model identifier is required")
)

// InvocationError is a failed completion call. It never escapes Submit;
// Invoker.Reply folds it into the transcript.
type InvocationError struct {
	Model string
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

const foldPrefix = "Error: My core processing unit encountered an issue. "

// foldTemplate is the assistant text shown for a failed call.
const foldTemplate = foldPrefix +
	"Please ensure Ollama server is running and the model '%s' is available. Details: %v"

// FoldError renders err as the text of an assistant turn.
func FoldError(modelID string, err error) string {
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return fmt.Sprintf(foldTemplate, invErr.Model, invErr.Err)
	}
	return fmt.Sprintf(foldTemplate, modelID, err)
}

// IsFolded reports whether an assistant turn's text is a folded error.
func IsFolded(text string) bool {
	return strings.HasPrefix(text, foldPrefix)
}
