// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	core "github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/export"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx     context.Context
	session *core.Session

	// Styling
	mode     styles.Mode
	theme    *styles.Theme
	markdown *styles.Markdown

	// Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	// Dimensions
	width  int
	height int

	// pending is set from Enter until the matching ReplyMsg arrives.
	pending bool
	seq     int

	// notice is a one-line status message, cleared on the next submit.
	notice string

	// exportDir receives ctrl+s exports.
	exportDir string
}

// New creates a chat view over sess.
func New(ctx context.Context, sess *core.Session, mode styles.Mode) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask DeepThink anything..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.ThinkingSpinner.Frames,
		FPS:    styles.ThinkingSpinner.Duration(),
	}

	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:      ctx,
		session:  sess,
		mode:     mode,
		theme:    styles.NewTheme(mode),
		viewport: vp,
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		keys:     DefaultKeyMap(),
		width:    80,
		height:   24,

		exportDir: ".",
	}
	m.markdown = styles.NewMarkdown(mode, m.theme.BubbleWidth()-2)
	m.refresh()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// The user turn lands in the transcript from the submit goroutine.
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// header (2) + status (1) + input (1) + help (1)
	const reserved = 5
	vpHeight := m.height - reserved
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight

	inputWidth := m.width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.help.Width = m.width

	m.theme.SetSize(m.width, m.height)
	if m.markdown.Width() != m.theme.BubbleWidth()-2 {
		m.markdown = styles.NewMarkdown(m.mode, m.theme.BubbleWidth()-2)
	}
	m.refresh()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		// Any reply still in flight belongs to the old conversation.
		m.seq++
		m.pending = false
		m.notice = ""
		m.input.Reset()
		m.input.Focus()
		m.refresh()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ToggleTheme):
		m.setMode(m.mode.Toggle())
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.exportTranscript()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	if m.pending {
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.seq++
	m.pending = true
	m.notice = ""
	m.input.Reset()
	m.input.Blur()
	m.refresh()

	return m, tea.Batch(
		SubmitCmd(m.ctx, m.session, text, m.seq),
		m.spinner.Tick,
	)
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}
	m.pending = false
	m.input.Focus()

	switch {
	case errors.Is(msg.Err, core.ErrDiscarded):
		m.notice = "Reply discarded: the conversation was reset."
	case errors.Is(msg.Err, core.ErrBusy):
		m.notice = "DeepThink is still answering."
	case msg.Err != nil:
		m.notice = msg.Err.Error()
	}

	m.refresh()
	return m, textinput.Blink
}

// =============================================================================
// STATE HELPERS
// =============================================================================

func (m *Model) setMode(mode styles.Mode) {
	m.mode = mode
	m.theme = styles.NewTheme(mode)
	m.theme.SetSize(m.width, m.height)
	m.markdown = styles.NewMarkdown(mode, m.theme.BubbleWidth()-2)
	m.refresh()
}

// exportTranscript writes the conversation as Markdown and reports the
// outcome in the status line.
func (m *Model) exportTranscript() {
	doc := export.NewDocument(m.session.Snapshot(), m.session.Params(), m.mode)
	path, err := export.WriteFile(doc, export.NewMarkdownExporter(nil), m.exportDir)
	if err != nil {
		m.notice = "Export failed: " + err.Error()
		return
	}
	m.notice = "Exported to " + path
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Mode returns the current theme mode.
func (m Model) Mode() styles.Mode {
	return m.mode
}

// Pending reports whether a reply is being awaited.
func (m Model) Pending() bool {
	return m.pending
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run starts a full-screen chat program over sess and blocks until it quits
// or ctx is cancelled.
func Run(ctx context.Context, sess *core.Session, mode styles.Mode) error {
	p := tea.NewProgram(
		New(ctx, sess, mode),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
