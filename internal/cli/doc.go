// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the terminal commands for deepthink.
//
// # Key Types
//
//   - Command: the subcommand to run (serve, chat, tui, status, config, version, help)
//   - Args: parsed flags, applied on top of the loaded configuration
//   - REPL: the line-oriented chat loop behind "deepthink chat"
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    cli.HandleErrorAndExit(err, args.JSON)
//	}
//	switch cmd {
//	case cli.CmdChat:
//	    return cli.HandleChat(ctx, cfg, client, args)
//	}
//
// Interactive chat commands: /help, /reset, /temp, /model, /history,
// /export, /quit.
package cli
