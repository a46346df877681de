// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		role string
	}{
		{"user", NewUserMessage("Hello"), "user"},
		{"assistant", NewAssistantMessage("Hello"), "assistant"},
		{"system", NewSystemMessage("Hello"), "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.msg.Role != tt.role {
				t.Errorf("Role = %q, want %q", tt.msg.Role, tt.role)
			}
			if tt.msg.Content != "Hello" {
				t.Errorf("Content = %q, want 'Hello'", tt.msg.Content)
			}
		})
	}
}

func TestChatResponse_TokensPerSecond(t *testing.T) {
	resp := &ChatResponse{EvalCount: 100, EvalDuration: int64(2 * time.Second)}
	if got := resp.TokensPerSecond(); got != 50 {
		t.Errorf("TokensPerSecond() = %v, want 50", got)
	}

	empty := &ChatResponse{EvalCount: 10}
	if got := empty.TokensPerSecond(); got != 0 {
		t.Errorf("TokensPerSecond() with zero duration = %v, want 0", got)
	}
}

func TestModelInfo_FormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{4_700_000_000, "4.4 GB"},
	}

	for _, tt := range tests {
		m := ModelInfo{Size: tt.size}
		if got := m.FormatSize(); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestOptions_ZeroTemperatureIsSent(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Model: "m", Options: WithTemperature(0)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"temperature":0`) {
		t.Errorf("request %s does not carry temperature 0", data)
	}
	if !strings.Contains(string(data), `"stream":false`) {
		t.Errorf("request %s does not disable streaming", data)
	}
}

// =============================================================================
// CLIENT TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{BaseURL: "http://example:11434/"})

	if c.BaseURL() != "http://example:11434" {
		t.Errorf("BaseURL() = %q, trailing slash not trimmed", c.BaseURL())
	}
	if c.GetConfig().DefaultModel != DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", c.GetConfig().DefaultModel, DefaultModel)
	}

	if NewClientWithConfig(nil).BaseURL() != DefaultBaseURL {
		t.Error("nil config should fall back to DefaultBaseURL")
	}
}

func TestClient_Chat(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Model:   got.Model,
			Message: NewAssistantMessage("Hi there"),
			Done:    true,
		})
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	msgs := []Message{NewSystemMessage("greeting"), NewUserMessage("Hello")}
	resp, err := c.Chat(context.Background(), "", msgs, WithTemperature(0.3))
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if resp.Message.Content != "Hi there" {
		t.Errorf("Content = %q, want 'Hi there'", resp.Message.Content)
	}
	if got.Model != DefaultModel {
		t.Errorf("request model = %q, want default %q", got.Model, DefaultModel)
	}
	if got.Stream {
		t.Error("request should not stream")
	}
	if len(got.Messages) != 2 || got.Messages[1].Content != "Hello" {
		t.Errorf("request messages = %+v", got.Messages)
	}
	if got.Options == nil || got.Options.Temperature == nil || *got.Options.Temperature != 0.3 {
		t.Errorf("request options = %+v, want temperature 0.3", got.Options)
	}
}

func TestClient_ChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{
			name:    "model not found",
			status:  http.StatusNotFound,
			body:    `{"error":"model 'nope' not found"}`,
			check:   IsModelNotFound,
			message: "model 'nope' not found",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"out of memory"}`,
			check:   func(err error) bool { return hasType(err, ErrTypeInvalidResponse) },
			message: "out of memory",
		},
		{
			name:    "bad json",
			status:  http.StatusOK,
			body:    `{not json`,
			check:   func(err error) bool { return hasType(err, ErrTypeInvalidResponse) },
			message: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
			_, err := c.Chat(context.Background(), "nope", []Message{NewUserMessage("x")}, nil)
			if err == nil {
				t.Fatal("Chat() expected error")
			}
			if !tt.check(err) {
				t.Errorf("error %v has wrong type", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestClient_NotRunning(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: url})

	_, err := c.Chat(context.Background(), "m", []Message{NewUserMessage("x")}, nil)
	if !IsNotRunning(err) {
		t.Errorf("Chat() error = %v, want not running", err)
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Cause == nil {
		t.Errorf("expected ClientError with cause, got %#v", err)
	}

	if err := c.CheckRunning(context.Background()); !IsNotRunning(err) {
		t.Errorf("CheckRunning() error = %v, want not running", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Chat(context.Background(), "m", []Message{NewUserMessage("x")}, nil)
	if !IsTimeout(err) {
		t.Errorf("Chat() error = %v, want timeout", err)
	}
}

func TestClient_Cancelled(t *testing.T) {
	entered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-entered
		cancel()
	}()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := c.Chat(ctx, "m", []Message{NewUserMessage("x")}, nil)

	if IsNotRunning(err) || IsTimeout(err) {
		t.Errorf("Chat() error = %v, want cancellation", err)
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeConnection {
		t.Fatalf("expected connection ClientError, got %#v", err)
	}
	if !strings.Contains(err.Error(), "request cancelled") {
		t.Errorf("error = %q, want it to mention the cancellation", err.Error())
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("cancellation cause should unwrap to context.Canceled")
	}
}

func TestClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte("Ollama is running"))
		case "/api/tags":
			json.NewEncoder(w).Encode(ListModelsResponse{Models: []ModelInfo{
				{Name: "deepseek-r1:7b", Size: 4_700_000_000},
				{Name: "llama3:8b"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	if err := c.CheckRunning(context.Background()); err != nil {
		t.Fatalf("CheckRunning() error = %v", err)
	}

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[0].Name != "deepseek-r1:7b" {
		t.Errorf("ListModels() = %+v", models)
	}
}

func TestErrorType_String(t *testing.T) {
	if ErrTypeModelNotFound.String() != "model_not_found" {
		t.Errorf("String() = %q", ErrTypeModelNotFound.String())
	}
	if ErrorType(99).String() != "unknown" {
		t.Errorf("String() = %q, want unknown", ErrorType(99).String())
	}
}

func TestClientError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Error() != "Ollama is not running: dial tcp: refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}
