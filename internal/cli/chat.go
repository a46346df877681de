// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/config"
	"github.com/jeranaias/deepthink/internal/export"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ui/styles"
	"github.com/jeranaias/deepthink/internal/util"
)

// =============================================================================
// INPUT
// =============================================================================

// LineReader reads one line of input per call.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides line editing and persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a liner-backed reader with history from historyFile.
func NewChatCLI(historyFile string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// DefaultHistoryFile returns ~/.deepthink/chat_history, or a temp path.
func DefaultHistoryFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "chat_history")
}

// LoadHistory loads history from the history file, if any.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line and records non-blank input in history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes history to the history file (mode 0600).
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL is the interactive chat loop over one session.
type REPL struct {
	session  *chat.Session
	input    LineReader
	out      io.Writer
	theme    *styles.Theme
	markdown *styles.Markdown
	mode     styles.Mode
	quiet    bool

	exportDir string

	started time.Time
	replies int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// REPLOptions configures a REPL.
type REPLOptions struct {
	Mode  styles.Mode
	Width int
	Quiet bool

	// ExportDir receives /export files (default: current directory).
	ExportDir string
}

// NewREPL creates a REPL reading from in and writing to out.
func NewREPL(sess *chat.Session, in LineReader, out io.Writer, opts REPLOptions) *REPL {
	if opts.Width <= 0 {
		opts.Width = DefaultTerminalWidth
	}
	theme := styles.NewTheme(opts.Mode)
	theme.SetSize(opts.Width, 0)

	return &REPL{
		session:   sess,
		input:     in,
		out:       out,
		theme:     theme,
		markdown:  styles.NewMarkdown(opts.Mode, theme.BubbleWidth()),
		mode:      opts.Mode,
		quiet:     opts.Quiet,
		exportDir: opts.ExportDir,
		started:   time.Now(),
	}
}

// Run reads and handles input until /quit, EOF or Ctrl+C at the prompt.
func (r *REPL) Run(ctx context.Context) error {
	if !r.quiet {
		r.printWelcome()
	}

	for {
		if ctx.Err() != nil {
			r.printGoodbye()
			return nil
		}

		line, err := r.input.Prompt("deepthink> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				r.printGoodbye()
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			keepGoing, err := r.handleSlashCommand(line)
			if err != nil {
				fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				r.printGoodbye()
				return nil
			}
			continue
		}

		r.send(ctx, line)
	}
}

// Interrupt cancels the completion in flight, if any.
func (r *REPL) Interrupt() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return false
	}
	r.cancel()
	r.cancel = nil
	return true
}

// send submits one message and prints the reply.
func (r *REPL) send(ctx context.Context, text string) {
	callCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		cancel()
	}()

	if !r.quiet {
		fmt.Fprintln(r.out, r.theme.Pending.Render("✨ "+styles.ThinkingMessage))
	}

	turn, err := r.session.Submit(callCtx, text)
	switch {
	case errors.Is(err, chat.ErrEmptySubmission):
		return
	case err != nil:
		fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		return
	}

	r.replies++
	fmt.Fprintln(r.out, r.renderTurn(turn))
	fmt.Fprintln(r.out)
}

func (r *REPL) renderTurn(t model.Turn) string {
	switch t.Role {
	case model.RoleUser:
		return r.theme.UserLabel.Render("👤 "+t.Role.DisplayName()+":") + " " + t.Text
	case model.RoleAssistant:
		label := r.theme.AssistantLabel.Render("🤖 " + t.Role.DisplayName() + ":")
		if chat.IsFolded(t.Text) {
			return label + "\n" + r.theme.Error.Render(t.Text)
		}
		return label + "\n" + r.markdown.Render(t.Text)
	default:
		return r.theme.Muted.Render(t.Text)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand runs one slash command. It returns false to exit.
func (r *REPL) handleSlashCommand(line string) (bool, error) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	rest := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		r.printHelp()

	case "/reset", "/clear", "/new":
		r.session.Reset()
		fmt.Fprintln(r.out, SuccessStyle.Render("[New conversation]"))
		fmt.Fprintln(r.out, r.renderTurn(r.session.Snapshot()[0]))

	case "/temp", "/temperature":
		if len(rest) == 0 {
			fmt.Fprintf(r.out, "Temperature: %.2f\n", r.session.Params().Temperature)
			return true, nil
		}
		t, err := ParseTemperature(rest[0])
		if err != nil {
			return true, err
		}
		if err := r.session.SetTemperature(t); err != nil {
			return true, err
		}
		fmt.Fprintf(r.out, "%s Temperature set to %.2f\n", SuccessStyle.Render("[OK]"), t)

	case "/model", "/m":
		if len(rest) == 0 {
			fmt.Fprintf(r.out, "Model: %s\n", r.session.Params().Model)
			return true, nil
		}
		if err := r.session.SetModel(rest[0]); err != nil {
			return true, err
		}
		fmt.Fprintf(r.out, "%s Switched to model: %s\n", SuccessStyle.Render("[OK]"), rest[0])

	case "/history":
		r.printHistory()

	case "/export", "/save":
		format := ""
		if len(rest) > 0 {
			format = rest[0]
		}
		exp, err := export.ForFormat(format, nil)
		if err != nil {
			return true, err
		}
		doc := export.NewDocument(r.session.Snapshot(), r.session.Params(), r.mode)
		path, err := export.WriteFile(doc, exp, r.exportDir)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(r.out, "%s Exported to %s\n", SuccessStyle.Render("[OK]"), path)

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
	return true, nil
}

// =============================================================================
// DISPLAY
// =============================================================================

func (r *REPL) printWelcome() {
	p := r.session.Params()
	fmt.Fprintln(r.out, TitleStyle.Render("🧠 DeepThink AI Assistant"))
	fmt.Fprintln(r.out, RenderSeparator(30))
	fmt.Fprintln(r.out, RenderField("Model:", p.Model))
	fmt.Fprintln(r.out, RenderField("Temperature:", fmt.Sprintf("%.2f", p.Temperature)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.renderTurn(r.session.Snapshot()[0]))
	fmt.Fprintln(r.out, DimStyle.Render("Type a message and press Enter. Commands: /help, /quit"))
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	commands := []struct{ cmd, desc string }{
		{"/help", "Show this help"},
		{"/reset", "Start a new conversation"},
		{"/temp [T]", "Show or set the temperature (0.0 to 1.0)"},
		{"/model [NAME]", "Show or switch the model"},
		{"/history", "Show the conversation so far"},
		{"/export [FMT]", "Save the conversation (md, json or html)"},
		{"/quit", "Exit chat"},
	}
	fmt.Fprintln(r.out, TitleStyle.Render("Chat Commands"))
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %-15s %s\n", c.cmd, DimStyle.Render(c.desc))
	}
	fmt.Fprintln(r.out, DimStyle.Render("Ctrl+C cancels a pending reply; Ctrl+D exits."))
}

func (r *REPL) printHistory() {
	turns := r.session.Snapshot()
	if len(turns) <= 1 {
		fmt.Fprintln(r.out, DimStyle.Render("[No messages yet]"))
		return
	}
	for i, t := range turns {
		text := strings.ReplaceAll(util.TruncateRunes(t.Text, 100), "\n", " ")
		fmt.Fprintf(r.out, "  %d. %s: %s\n", i+1, t.Role.DisplayName(), text)
	}
}

func (r *REPL) printGoodbye() {
	if r.replies > 0 && !r.quiet {
		fmt.Fprintf(r.out, "%s %d replies in %s\n",
			DimStyle.Render("Session:"),
			r.replies,
			formatDuration(time.Since(r.started)))
	}
	fmt.Fprintln(r.out, DimStyle.Render("Goodbye!"))
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// Backend is the model server used by the terminal commands.
// *ollama.Client satisfies it.
type Backend interface {
	chat.Completer
	StatusChecker
}

// NewChatSession builds a conversation from cfg's chat settings.
func NewChatSession(cfg *config.Config, c chat.Completer) (*chat.Session, error) {
	params := chat.Params{Model: cfg.Chat.Model, Temperature: cfg.Chat.Temperature}
	return chat.NewSession(chat.NewInvoker(c), cfg.Chat.Greeting, params)
}

// interruptSignals are routed to REPL.Interrupt while the chat command runs.
var interruptSignals = []os.Signal{os.Interrupt}

// HandleChat runs the interactive chat command.
func HandleChat(ctx context.Context, cfg *config.Config, backend Backend, args Args) error {
	sess, err := NewChatSession(cfg, backend)
	if err != nil {
		return &CommandError{Command: "chat", Action: "start", Reason: "invalid chat settings", Err: err}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := backend.CheckRunning(checkCtx); err != nil && !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s Ollama is not reachable at %s; replies will show the error. Start it with: ollama serve\n",
			WarningStyle.Render("[Warning]"), cfg.Ollama.URL)
	}
	cancel()

	mode, _ := styles.ParseMode(cfg.UI.Theme)
	in := NewChatCLI(DefaultHistoryFile())
	defer in.Close()

	repl := NewREPL(sess, in, os.Stdout, REPLOptions{
		Mode:  mode,
		Width: GetTerminalWidth(),
		Quiet: args.Quiet,
	})

	// Ctrl+C during a reply cancels the call; at the prompt liner aborts.
	// Other signals keep their default action.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, interruptSignals...)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		for range sigCh {
			if repl.Interrupt() {
				fmt.Fprintln(os.Stderr, "\n"+WarningStyle.Render("[Cancelled]"))
			}
		}
	}()

	return repl.Run(ctx)
}
