// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	core "github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ui/styles"
	"github.com/jeranaias/deepthink/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete view.
// Layout: header (2) + transcript (viewport) + status (1) + input (1) + help (1).
func (m Model) renderChat() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.input.View(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("🧠 DeepThink AI Assistant")
	subtitle := m.theme.HeaderSubtitle.Render("Your intelligent companion for all queries.")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m Model) renderStatus() string {
	if m.pending {
		return m.theme.Pending.Render(m.spinner.View() + " " + styles.ThinkingMessage)
	}
	if m.notice != "" {
		return m.theme.Error.Render(util.TruncateWidth(m.notice, m.width))
	}
	p := m.session.Params()
	return m.theme.Muted.Render(fmt.Sprintf("%s · temperature %.2f · %s", p.Model, p.Temperature, m.mode))
}

// =============================================================================
// TRANSCRIPT RENDER
// =============================================================================

// renderTranscript renders every turn of the session in order.
func (m Model) renderTranscript() string {
	turns := m.session.Snapshot()
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, m.renderTurn(t))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderTurn(t model.Turn) string {
	switch t.Role {
	case model.RoleUser:
		label := m.theme.UserLabel.Render("👤 " + t.Role.DisplayName() + ":")
		return label + "\n" + m.theme.UserBubble.Render(t.Text)

	case model.RoleAssistant:
		label := m.theme.AssistantLabel.Render("🤖 " + t.Role.DisplayName() + ":")
		if core.IsFolded(t.Text) {
			return label + "\n" + m.theme.ErrorBubble.Render(t.Text)
		}
		return label + "\n" + m.theme.AssistantBubble.Render(m.markdown.Render(t.Text))

	default:
		return m.theme.Muted.Render(t.Text)
	}
}
