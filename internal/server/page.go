// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/session"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// ============================================================================
// PAGE TEMPLATE
// ============================================================================

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if .Pending}}<meta http-equiv="refresh" content="2">{{end}}
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body class="{{.Theme}}">
<h1>🧠 {{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>

<div class="controls">
<form method="post" action="/reset"><button type="submit">🔄 Start New Conversation</button></form>
<form method="post" action="/theme"><button type="submit">{{.ToggleLabel}}</button></form>
<form method="get" action="/export"><input type="hidden" name="format" value="md"><button type="submit">📥 Export</button></form>
</div>

{{range .Turns}}<div class="bubble {{.Class}}"><span class="label">{{.Label}}</span>{{.Text}}</div>
{{end}}
{{if .Pending}}<div class="bubble assistant pending">✨ {{.PendingText}}</div>{{end}}
{{if .Notice}}<p class="pending">{{.Notice}}</p>{{end}}

<form method="post" action="/submit">
<input type="text" name="text" placeholder="Ask DeepThink anything..." autocomplete="off" autofocus>
<label for="temperature">Temperature: {{printf "%.2f" .Temperature}} ({{.Model}})</label>
<input type="range" id="temperature" name="temperature" min="0" max="1" step="0.05" value="{{printf "%.2f" .Temperature}}">
<button type="submit">Send</button>
</form>
</body>
</html>
`))

type pageTurn struct {
	Class string
	Label string
	Text  string
}

type pageData struct {
	Title       string
	Subtitle    string
	CSS         template.CSS
	Theme       styles.Mode
	ToggleLabel string
	Turns       []pageTurn
	Pending     bool
	PendingText string
	Notice      string
	Temperature float64
	Model       string
}

// ============================================================================
// PAGE HANDLERS
// ============================================================================

// browserSession returns the session named by the request cookie, creating
// one (and setting the cookie) when there is none or it has expired.
func (s *Server) browserSession(w http.ResponseWriter, r *http.Request) (*session.Handle, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if h, ok := s.sessions.Get(c.Value); ok {
			return h, nil
		}
	}

	h, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	s.stats.sessionsCreated.Add(1)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    h.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h, nil
}

// handlePage handles GET /.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	h, err := s.browserSession(w, r)
	if err != nil {
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, h, http.StatusOK, "")
}

// handleSubmitForm handles POST /submit.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	h, err := s.browserSession(w, r)
	if err != nil {
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var override chat.Override
	if raw := r.PostFormValue("temperature"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			err = chat.ValidateTemperature(t)
		}
		if err != nil {
			s.renderPage(w, h, http.StatusBadRequest, "Temperature must be between 0.0 and 1.0.")
			return
		}
		override.Temperature = &t
	}

	// A closed tab should not cancel the call; the reply is still recorded.
	_, err = h.Chat.SubmitWith(context.WithoutCancel(r.Context()), r.PostFormValue("text"), override)
	switch {
	case errors.Is(err, chat.ErrBusy):
		s.stats.rejected.Add(1)
		s.renderPage(w, h, http.StatusConflict, "DeepThink is still answering your previous message.")
		return
	case errors.Is(err, chat.ErrEmptySubmission):
		s.stats.rejected.Add(1)
	case err == nil:
		s.stats.submissions.Add(1)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleResetForm handles POST /reset.
func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	h, err := s.browserSession(w, r)
	if err != nil {
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}
	h.Chat.Reset()
	s.stats.resets.Add(1)
	log.Printf("SESSION_RESET | id=%s", h.ID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleThemeForm handles POST /theme.
func (s *Server) handleThemeForm(w http.ResponseWriter, r *http.Request) {
	h, err := s.browserSession(w, r)
	if err != nil {
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}
	h.ToggleTheme()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage writes the page for h. Only user and assistant turns are
// shown; the seed system turn stays out of the transcript view.
func (s *Server) renderPage(w http.ResponseWriter, h *session.Handle, status int, notice string) {
	theme := h.Theme()
	params := h.Chat.Params()

	data := pageData{
		Title:       "DeepThink AI Assistant",
		Subtitle:    "Your intelligent companion for all queries.",
		CSS:         template.CSS(styles.CSS(theme)),
		Theme:       theme,
		ToggleLabel: toggleLabel(theme),
		Pending:     h.Chat.State() == chat.StateAwaitingReply,
		PendingText: styles.ThinkingMessage,
		Notice:      notice,
		Temperature: params.Temperature,
		Model:       params.Model,
	}
	for _, turn := range h.Chat.Snapshot() {
		if turn.IsSystem() {
			continue
		}
		label := "🤖 " + turn.Role.DisplayName() + ":"
		if turn.IsUser() {
			label = "👤 " + turn.Role.DisplayName() + ":"
		}
		data.Turns = append(data.Turns, pageTurn{
			Class: turn.Role.String(),
			Label: label,
			Text:  turn.Text,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("PAGE_RENDER_FAILED | id=%s error=%v", h.ID, err)
	}
}

func toggleLabel(m styles.Mode) string {
	if m.IsDark() {
		return "☀️ Light Mode"
	}
	return "🌙 Dark Mode"
}
