// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/deepthink/internal/config"
)

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig runs "config <subcommand>" against the file named by
// --config, or the default config file.
func HandleConfig(w io.Writer, args Args) error {
	path, err := configFilePath(args)
	if err != nil {
		return &CommandError{Command: "config", Action: args.Subcommand, Reason: "cannot locate config file", Err: err}
	}

	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(w, path, args.JSON)
	case "get":
		return handleConfigGet(w, path, args.ConfigKey)
	case "set":
		return handleConfigSet(w, path, args.ConfigKey, args.ConfigVal)
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(w, k)
		}
		return nil
	case "path":
		return handleConfigPath(w, path, args.JSON)
	case "reset":
		if err := saveConfig(path, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
		return nil
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   args.Subcommand,
			Reason:  "want show, get, set, keys, path or reset",
			Example: "deepthink config set chat.model llama3:8b",
		}
	}
}

func configFilePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// loadForEdit reads the file as written, without environment overrides,
// so that saving does not persist them. A missing file gives defaults.
func loadForEdit(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg := &config.Config{}
	load := config.LoadTOML
	if strings.HasSuffix(path, ".json") {
		load = config.LoadJSON
	}
	if err := load(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func handleConfigShow(w io.Writer, path string, jsonMode bool) error {
	cfg, err := loadForEdit(path)
	if err != nil {
		return &CommandError{Command: "config", Action: "show", Reason: "cannot read " + path, Err: err}
	}
	if jsonMode {
		return outputJSON(w, cfg)
	}

	fmt.Fprintln(w, TitleStyle.Render("DeepThink Configuration"))
	fmt.Fprintln(w, RenderSeparator())
	for _, key := range config.Keys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, RenderField(key, fmt.Sprint(v)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render("Config file: "+path))
	return nil
}

func handleConfigGet(w io.Writer, path, key string) error {
	if key == "" {
		return &ValidationError{Field: "key", Reason: "no config key given", Example: "deepthink config get chat.model"}
	}
	cfg, err := loadForEdit(path)
	if err != nil {
		return &CommandError{Command: "config", Action: "get", Reason: "cannot read " + path, Err: err}
	}
	v, err := cfg.Get(key)
	if err != nil {
		return &ValidationError{Field: "key", Value: key, Reason: err.Error()}
	}
	fmt.Fprintln(w, v)
	return nil
}

func handleConfigSet(w io.Writer, path, key, value string) error {
	if key == "" || value == "" {
		return &ValidationError{Field: "arguments", Reason: "need a key and a value", Example: "deepthink config set chat.temperature 0.5"}
	}
	cfg, err := loadForEdit(path)
	if err != nil {
		return &CommandError{Command: "config", Action: "set", Reason: "cannot read " + path, Err: err}
	}
	if err := cfg.Set(key, value); err != nil {
		return &ValidationError{Field: "key", Value: key, Reason: err.Error()}
	}
	if err := saveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

func handleConfigPath(w io.Writer, path string, jsonMode bool) error {
	_, err := os.Stat(path)
	exists := err == nil
	if jsonMode {
		return outputJSON(w, map[string]interface{}{"path": path, "exists": exists})
	}
	fmt.Fprintln(w, path)
	return nil
}

// saveConfig validates cfg and writes it to path.
func saveConfig(path string, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return &CommandError{Command: "config", Action: "save", Reason: "cannot create config directory", Err: err}
	}
	var err error
	if strings.HasSuffix(path, ".json") {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return &CommandError{Command: "config", Action: "save", Reason: "cannot write " + path, Err: err}
	}
	return nil
}
