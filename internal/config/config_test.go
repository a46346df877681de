// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Chat.Model != "deepseek-r1:7b" {
		t.Errorf("Chat.Model = %q, want deepseek-r1:7b", cfg.Chat.Model)
	}
	if cfg.Chat.Temperature != 0.7 {
		t.Errorf("Chat.Temperature = %v, want 0.7", cfg.Chat.Temperature)
	}
	if cfg.Ollama.URL != "http://127.0.0.1:11434" {
		t.Errorf("Ollama.URL = %q", cfg.Ollama.URL)
	}
	if cfg.Addr() != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8501", cfg.Addr())
	}
	if cfg.IdleTimeout() != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v, want 30m", cfg.IdleTimeout())
	}
	if cfg.OllamaTimeout() != 0 {
		t.Errorf("OllamaTimeout() = %v, want 0", cfg.OllamaTimeout())
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty model", func(c *Config) { c.Chat.Model = " " }, "chat.model"},
		{"negative temperature", func(c *Config) { c.Chat.Temperature = -0.5 }, "chat.temperature"},
		{"hot temperature", func(c *Config) { c.Chat.Temperature = 1.2 }, "chat.temperature"},
		{"bad url scheme", func(c *Config) { c.Ollama.URL = "ftp://host" }, "ollama.url"},
		{"url without host", func(c *Config) { c.Ollama.URL = "http://" }, "ollama.url"},
		{"negative timeout", func(c *Config) { c.Ollama.TimeoutSecs = -1 }, "ollama.timeout_secs"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"negative idle", func(c *Config) { c.Server.IdleTimeoutMins = -5 }, "server.idle_timeout_mins"},
		{"bad theme", func(c *Config) { c.UI.Theme = "sepia" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidateErrors", err)
			}
			if len(verrs) != 1 || verrs[0].Field != tt.field {
				t.Errorf("Validate() = %v, want single error on %s", verrs, tt.field)
			}
		})
	}
}

func TestConfig_ValidateZeroTemperature(t *testing.T) {
	cfg := Default()
	cfg.Chat.Temperature = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("temperature 0 should be valid: %v", err)
	}
}

func TestValidateErrors_Error(t *testing.T) {
	errs := ValidateErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	if errs.Error() != "a: bad; b: worse" {
		t.Errorf("Error() = %q", errs.Error())
	}
	if (ValidateErrors{}).Error() != "no validation errors" {
		t.Error("empty ValidateErrors message wrong")
	}
}

// =============================================================================
// LOAD/SAVE TESTS
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chat]
model = "llama3:8b"
temperature = 0.0

[server]
port = 9000
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Chat.Model != "llama3:8b" {
		t.Errorf("Chat.Model = %q", cfg.Chat.Model)
	}
	if cfg.Chat.Temperature != 0 {
		t.Errorf("explicit temperature 0 replaced by %v", cfg.Chat.Temperature)
	}
	if cfg.Chat.Greeting != DefaultGreeting {
		t.Errorf("Chat.Greeting not defaulted: %q", cfg.Chat.Greeting)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Ollama.URL != "http://127.0.0.1:11434" {
		t.Errorf("Ollama.URL not defaulted: %q", cfg.Ollama.URL)
	}
}

func TestLoadFromPath_MissingChatSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"dark\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Chat.Temperature != 0.7 {
		t.Errorf("Chat.Temperature = %v, want default 0.7", cfg.Chat.Temperature)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[chat\nmodel ="), 0600)
	if _, err := LoadFromPath(bad); err == nil {
		t.Error("expected error for malformed TOML")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	os.WriteFile(invalid, []byte("[chat]\nmodel = \"m\"\ntemperature = 3.0\n"), 0600)
	if _, err := LoadFromPath(invalid); err == nil || !strings.Contains(err.Error(), "chat.temperature") {
		t.Errorf("expected temperature validation error, got %v", err)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Chat.Model = "phi3:mini"
	cfg.Chat.Temperature = 0.25
	cfg.UI.Theme = "dark"

	tomlPath := filepath.Join(dir, "config.toml")
	if err := SaveTOML(cfg, tomlPath); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}
	data, _ := os.ReadFile(tomlPath)
	if !strings.HasPrefix(string(data), "# deepthink configuration file") {
		t.Error("TOML file missing header comment")
	}

	jsonPath := filepath.Join(dir, "config.json")
	if err := SaveJSON(cfg, jsonPath); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	for _, path := range []string{tomlPath, jsonPath} {
		loaded, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath(%s) error = %v", path, err)
		}
		if loaded.Chat != cfg.Chat || loaded.UI != cfg.UI {
			t.Errorf("%s round trip = %+v, want %+v", filepath.Base(path), loaded.Chat, cfg.Chat)
		}
	}
}

func TestLoad_UsesHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file error = %v", err)
	}
	if cfg.Chat.Model != Default().Chat.Model {
		t.Errorf("Load() without file should return defaults")
	}

	cfg.Chat.Model = "saved-model"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".deepthink", "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Chat.Model != "saved-model" {
		t.Errorf("Load() model = %q, want saved-model", loaded.Chat.Model)
	}
}

// =============================================================================
// ENVIRONMENT TESTS
// =============================================================================

func TestConfig_ApplyEnvOverrides(t *testing.T) {
	t.Setenv("DEEPTHINK_MODEL", "mistral:7b")
	t.Setenv("DEEPTHINK_TEMPERATURE", "0.3")
	t.Setenv("DEEPTHINK_OLLAMA_URL", "http://gpu-box:11434")
	t.Setenv("DEEPTHINK_PORT", "not-a-number")
	t.Setenv("DEEPTHINK_THEME", "dark")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Chat.Model != "mistral:7b" {
		t.Errorf("Chat.Model = %q", cfg.Chat.Model)
	}
	if cfg.Chat.Temperature != 0.3 {
		t.Errorf("Chat.Temperature = %v", cfg.Chat.Temperature)
	}
	if cfg.Ollama.URL != "http://gpu-box:11434" {
		t.Errorf("Ollama.URL = %q", cfg.Ollama.URL)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("unparseable port should be ignored, got %d", cfg.Server.Port)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q", cfg.UI.Theme)
	}
}

// =============================================================================
// GET/SET TESTS
// =============================================================================

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("chat.temperature", "0.4"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("server.idle_timeout_mins", "5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("ollama.url", "http://other:11434"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if v, _ := cfg.Get("chat.temperature"); v != 0.4 {
		t.Errorf("Get(chat.temperature) = %v", v)
	}
	if v, _ := cfg.Get("server.idle_timeout_mins"); v != 5 {
		t.Errorf("Get(server.idle_timeout_mins) = %v", v)
	}
	if cfg.Ollama.URL != "http://other:11434" {
		t.Errorf("Ollama.URL = %q", cfg.Ollama.URL)
	}

	if _, err := cfg.Get("chat.nope"); err == nil {
		t.Error("Get() unknown key should fail")
	}
	if err := cfg.Set("chat.model.x", "y"); err == nil {
		t.Error("Set() through a non-struct should fail")
	}
	if err := cfg.Set("server.port", "eighty"); err == nil {
		t.Error("Set() with bad integer should fail")
	}
	if _, err := cfg.Get(""); err == nil {
		t.Error("Get() empty key should fail")
	}
}

func TestKeys_AllResolvable(t *testing.T) {
	cfg := Default()
	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

// =============================================================================
// WATCH TESTS
// =============================================================================

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { got <- c })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	cfg := Default()
	cfg.Chat.Model = "reloaded:1b"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.Chat.Model != "reloaded:1b" {
			t.Errorf("reloaded model = %q", c.Chat.Model)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report change")
	}
}

// =============================================================================
// GLOBAL TESTS
// =============================================================================

func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	t.Setenv("HOME", t.TempDir())
	_ = Global()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
	ResetGlobalForTesting()
}
