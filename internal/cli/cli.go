// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/jeranaias/deepthink/internal/config"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// Version information (overridden at build time with -ldflags).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdServe Command = iota
	CmdChat
	CmdTUI
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdServe:
		return "serve"
	case CmdChat:
		return "chat"
	case CmdTUI:
		return "tui"
	case CmdStatus:
		return "status"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

var commandNames = map[string]Command{
	"serve":   CmdServe,
	"web":     CmdServe,
	"chat":    CmdChat,
	"tui":     CmdTUI,
	"status":  CmdStatus,
	"s":       CmdStatus,
	"config":  CmdConfig,
	"version": CmdVersion,
	"help":    CmdHelp,
}

// boolFlagNames never take a value.
var boolFlagNames = []string{"quiet", "q", "json", "help", "h", "version", "V"}

// Args holds parsed command-line arguments. Zero values mean "not given".
type Args struct {
	Model       string
	Temperature *float64
	Theme       string
	Host        string
	Port        int
	OllamaURL   string
	ConfigPath  string
	Quiet       bool
	JSON        bool

	// config subcommand: show, get, set, path, keys, reset
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	Raw []string
}

const usageText = `deepthink - a themed chat front end for a local Ollama model

Usage:
  deepthink [serve]             Start the web interface (default)
  deepthink chat                Interactive chat in the terminal
  deepthink tui                 Full-screen terminal chat
  deepthink status, s           Show Ollama and configuration status
  deepthink config [subcommand] Configuration
  deepthink version             Show version
  deepthink help                Show this help

Config Commands:
  deepthink config show             Show all settings
  deepthink config get KEY          Show one setting (e.g. chat.model)
  deepthink config set KEY VALUE    Change and save a setting
  deepthink config keys             List setting keys
  deepthink config path             Show the config file path
  deepthink config reset            Restore defaults

Flags:
  -m, --model NAME        Ollama model (default from config)
  -t, --temperature T     Sampling temperature, 0.0 to 1.0
      --theme MODE        light, dark or auto
      --host HOST         Web server host
  -p, --port PORT         Web server port
      --ollama-url URL    Ollama API base URL
  -c, --config PATH       Config file (TOML or JSON)
  -q, --quiet             Minimal output
      --json              JSON output (status, config, errors)

Chat Commands:
  /help                   Show chat commands
  /reset                  Start a new conversation
  /temp [T]               Show or set the temperature
  /model [NAME]           Show or switch the model
  /history                Show the conversation so far
  /export [md|json|html]  Save the conversation to a file
  /quit                   Exit

Environment:
  DEEPTHINK_MODEL, DEEPTHINK_TEMPERATURE, DEEPTHINK_OLLAMA_URL,
  DEEPTHINK_PORT, DEEPTHINK_THEME override the config file.

Version: %s
`

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "deepthink version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)
	args := Args{
		Model:      p.Flag("model", "m"),
		Theme:      p.Flag("theme"),
		Host:       p.Flag("host"),
		OllamaURL:  p.Flag("ollama-url"),
		ConfigPath: p.Flag("config", "c"),
		Quiet:      p.BoolFlag("quiet", "q"),
		JSON:       p.BoolFlag("json"),
		Raw:        argv,
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version", "V") {
		return CmdVersion, args, nil
	}

	if raw := p.Flag("temperature", "t"); raw != "" {
		t, err := ParseTemperature(raw)
		if err != nil {
			return CmdHelp, args, err
		}
		args.Temperature = &t
	}
	if raw := p.Flag("port", "p"); raw != "" {
		port, err := ParsePort(raw)
		if err != nil {
			return CmdHelp, args, err
		}
		args.Port = port
	}
	if args.Theme != "" {
		if _, err := styles.ParseMode(args.Theme); err != nil {
			return CmdHelp, args, &ValidationError{Field: "theme", Value: args.Theme, Reason: "must be light, dark or auto"}
		}
	}

	if p.PositionalCount() == 0 {
		return CmdServe, args, nil
	}
	name := p.Positional(0)
	cmd, ok := commandNames[name]
	if !ok {
		return CmdHelp, args, errUnknownCommand(name)
	}

	if cmd == CmdConfig {
		args.Subcommand = p.Positional(1)
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		args.ConfigKey = p.Positional(2)
		args.ConfigVal = joinArgs(p, 3)
	}
	return cmd, args, nil
}

// Apply copies the flags that were given onto cfg.
func (a Args) Apply(cfg *config.Config) {
	if a.Model != "" {
		cfg.Chat.Model = a.Model
	}
	if a.Temperature != nil {
		cfg.Chat.Temperature = *a.Temperature
	}
	if a.Theme != "" {
		cfg.UI.Theme = a.Theme
	}
	if a.Host != "" {
		cfg.Server.Host = a.Host
	}
	if a.Port != 0 {
		cfg.Server.Port = a.Port
	}
	if a.OllamaURL != "" {
		cfg.Ollama.URL = a.OllamaURL
	}
}

// LoadConfig loads the config file named by --config, or the default one,
// and applies the flags on top.
func LoadConfig(a Args) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if a.ConfigPath != "" {
		cfg, err = config.LoadFromPath(a.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	a.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
