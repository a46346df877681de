// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
//
// Only the non-streaming surface is implemented: a chat completion is one
// blocking round trip that returns the full reply or fails.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - Message: chat message with role and content
//   - Options: sampling parameters (temperature)
//   - ChatResponse: complete reply with timing metrics
//   - ClientError: typed failure (not running, timeout, model not found, ...)
//
// # Usage
//
//	client := ollama.NewClient()
//	resp, err := client.Chat(ctx, "deepseek-r1:7b",
//	    []ollama.Message{ollama.NewUserMessage("Hello")},
//	    ollama.WithTemperature(0.7))
//	if ollama.IsNotRunning(err) {
//	    // start the server
//	}
package ollama
