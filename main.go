// deepthink - a themed chat front end for a local Ollama model.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/cli"
	"github.com/jeranaias/deepthink/internal/config"
	"github.com/jeranaias/deepthink/internal/ollama"
	"github.com/jeranaias/deepthink/internal/server"
	"github.com/jeranaias/deepthink/internal/session"
	uichat "github.com/jeranaias/deepthink/internal/ui/chat"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return
	case cli.CmdConfig:
		// Edits the file as written; flags and env do not apply.
		if err := cli.HandleConfig(os.Stdout, args); err != nil {
			cli.HandleErrorAndExit(err, args.JSON)
		}
		return
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
	config.SetGlobal(cfg)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.URL,
		Timeout:      cfg.OllamaTimeout(),
		DefaultModel: cfg.Chat.Model,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Terminal front ends own the screen; event logs are for the server.
	if cmd == cli.CmdChat || cmd == cli.CmdTUI {
		log.SetOutput(io.Discard)
	}

	switch cmd {
	case cli.CmdServe:
		err = runServer(ctx, cfg, client, args)
	case cli.CmdChat:
		// The REPL handles its own signals so Ctrl+C can cancel a reply.
		stop()
		err = cli.HandleChat(context.Background(), cfg, client, args)
	case cli.CmdTUI:
		err = runTUI(ctx, cfg, client)
	case cli.CmdStatus:
		err = cli.HandleStatus(ctx, os.Stdout, cfg, client, args)
	default:
		err = fmt.Errorf("command %s not handled", cmd)
	}

	if err != nil {
		stop()
		cli.HandleErrorAndExit(err, args.JSON)
	}
}

// =============================================================================
// WEB SERVER
// =============================================================================

func runServer(ctx context.Context, cfg *config.Config, client *ollama.Client, args cli.Args) error {
	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		return err
	}

	sessCfg := session.DefaultConfig()
	sessCfg.IdleTimeout = cfg.IdleTimeout()
	sessCfg.Theme = mode

	srv := server.New(server.Options{
		Addr:     cfg.Addr(),
		Version:  Version,
		Greeting: cfg.Chat.Greeting,
		Params:   chat.Params{Model: cfg.Chat.Model, Temperature: cfg.Chat.Temperature},
		Session:  sessCfg,
	}, client)

	watchConfig(ctx, args, srv)

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := client.CheckRunning(checkCtx); err != nil {
		log.Printf("OLLAMA_UNREACHABLE | url=%s error=%v", cfg.Ollama.URL, err)
	}
	cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	if !args.Quiet {
		fmt.Printf("DeepThink AI Assistant on http://%s (model %s)\n", cfg.Addr(), cfg.Chat.Model)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &cli.CommandError{Command: "serve", Action: "listen", Reason: "cannot serve on " + cfg.Addr(), Err: err}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchConfig applies edits to the config file as defaults for new
// sessions. Flags given on the command line keep precedence.
func watchConfig(ctx context.Context, args cli.Args, srv *server.Server) {
	path := args.ConfigPath
	if path == "" {
		if err := config.EnsureConfigDir(); err != nil {
			log.Printf("CONFIG_WATCH_DISABLED | error=%v", err)
			return
		}
		p, err := config.ConfigPathTOML()
		if err != nil {
			log.Printf("CONFIG_WATCH_DISABLED | error=%v", err)
			return
		}
		path = p
	}

	w, err := config.NewWatcher(path, func(next *config.Config) {
		args.Apply(next)
		mode, err := styles.ParseMode(next.UI.Theme)
		if err != nil {
			mode = styles.ModeLight
		}
		params := chat.Params{Model: next.Chat.Model, Temperature: next.Chat.Temperature}
		if err := srv.SetDefaults(params, mode); err != nil {
			log.Printf("CONFIG_RELOAD_REJECTED | error=%v", err)
			return
		}
		config.SetGlobal(next)
	})
	if err != nil {
		log.Printf("CONFIG_WATCH_DISABLED | path=%s error=%v", path, err)
		return
	}
	go w.Run(ctx)
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(ctx context.Context, cfg *config.Config, client *ollama.Client) error {
	sess, err := cli.NewChatSession(cfg, client)
	if err != nil {
		return &cli.CommandError{Command: "tui", Action: "start", Reason: "invalid chat settings", Err: err}
	}
	mode, err := styles.ParseMode(cfg.UI.Theme)
	if err != nil {
		return err
	}

	return uichat.Run(ctx, sess, mode)
}
