// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/jeranaias/deepthink/internal/ollama"
)

// Temperature bounds and default.
const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	DefaultTemperature = 0.7
)

// Params are the per-call request parameters. They belong to a session and
// may change between calls without touching history.
type Params struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// DefaultParams returns the stock model at the default temperature.
func DefaultParams() Params {
	return Params{
		Model:       ollama.DefaultModel,
		Temperature: DefaultTemperature,
	}
}

// Validate checks the model is set and the temperature is in range.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return ErrNoModel
	}
	return ValidateTemperature(p.Temperature)
}

// ValidateTemperature reports whether t is a usable sampling temperature.
func ValidateTemperature(t float64) error {
	// NaN fails both comparisons, so test the accepted range directly.
	if !(t >= MinTemperature && t <= MaxTemperature) {
		return fmt.Errorf("%w: got %v", ErrInvalidTemperature, t)
	}
	return nil
}

// options converts the params into Ollama sampling options.
func (p Params) options() *ollama.Options {
	return ollama.WithTemperature(p.Temperature)
}

// Override carries per-request parameter changes. Zero fields leave the
// session's value alone.
type Override struct {
	Model       string
	Temperature *float64
}

// Validate checks the override's fields without touching any session.
func (o Override) Validate() error {
	if o.Model != "" && strings.TrimSpace(o.Model) == "" {
		return ErrNoModel
	}
	if o.Temperature != nil {
		return ValidateTemperature(*o.Temperature)
	}
	return nil
}

// apply returns p with the override's fields set.
func (o Override) apply(p Params) Params {
	if m := strings.TrimSpace(o.Model); m != "" {
		p.Model = m
	}
	if o.Temperature != nil {
		p.Temperature = *o.Temperature
	}
	return p
}
