// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/session"
)

// ============================================================================
// API TYPES
// ============================================================================

// TranscriptResponse is the full state of one conversation.
type TranscriptResponse struct {
	ID     string       `json:"id"`
	State  string       `json:"state"`
	Params chat.Params  `json:"params"`
	Turns  []model.Turn `json:"turns"`
}

// MessageRequest is the body of POST /api/sessions/{id}/messages.
type MessageRequest struct {
	Text        string   `json:"text"`
	Temperature *float64 `json:"temperature,omitempty"`
	Model       string   `json:"model,omitempty"`
}

// MessageResponse carries the reply and the transcript after it.
type MessageResponse struct {
	Reply      model.Turn         `json:"reply"`
	Transcript TranscriptResponse `json:"transcript"`
}

// ModelInfo describes an installed model.
type ModelInfo struct {
	Name   string `json:"name"`
	Size   string `json:"size"`
	Family string `json:"family,omitempty"`
}

// ModelsResponse lists installed models.
type ModelsResponse struct {
	Default string      `json:"default"`
	Models  []ModelInfo `json:"models"`
}

func transcriptOf(h *session.Handle) TranscriptResponse {
	return TranscriptResponse{
		ID:     h.ID,
		State:  h.Chat.State().String(),
		Params: h.Chat.Params(),
		Turns:  h.Chat.Snapshot(),
	}
}

// ============================================================================
// SESSION HANDLERS
// ============================================================================

// lookup resolves the {id} path value or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Handle, bool) {
	h, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return nil, false
	}
	return h, true
}

// handleCreateSession handles POST /api/sessions.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	h, err := s.sessions.Create()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "session_error", err.Error())
		return
	}
	s.stats.sessionsCreated.Add(1)
	s.writeJSON(w, http.StatusCreated, transcriptOf(h))
}

// handleSessionStatus handles GET /api/sessions/{id}.
func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, h.GetStatus())
}

// handleEndSession handles DELETE /api/sessions/{id}.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.End(r.PathValue("id")) {
		s.writeError(w, http.StatusNotFound, "session_not_found", "no such session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTranscript handles GET /api/sessions/{id}/transcript.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, transcriptOf(h))
}

// handleResetSession handles POST /api/sessions/{id}/reset.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	h.Chat.Reset()
	s.stats.resets.Add(1)
	log.Printf("SESSION_RESET | id=%s", h.ID)
	s.writeJSON(w, http.StatusOK, transcriptOf(h))
}

// handleMessage handles POST /api/sessions/{id}/messages.
//
// The call blocks until the reply exists. Completion failures are not HTTP
// errors: they come back as an ordinary assistant reply.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	override := chat.Override{Model: req.Model, Temperature: req.Temperature}
	reply, err := h.Chat.SubmitWith(context.WithoutCancel(r.Context()), req.Text, override)
	switch {
	case errors.Is(err, chat.ErrInvalidTemperature):
		s.writeError(w, http.StatusBadRequest, "invalid_temperature", err.Error())
		return
	case errors.Is(err, chat.ErrNoModel):
		s.writeError(w, http.StatusBadRequest, "invalid_model", err.Error())
		return
	case errors.Is(err, chat.ErrEmptySubmission):
		s.stats.rejected.Add(1)
		s.writeError(w, http.StatusBadRequest, "empty_submission", err.Error())
		return
	case errors.Is(err, chat.ErrBusy):
		s.stats.rejected.Add(1)
		s.writeError(w, http.StatusConflict, "busy", err.Error())
		return
	case errors.Is(err, chat.ErrDiscarded):
		s.writeError(w, http.StatusConflict, "discarded", err.Error())
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	s.stats.submissions.Add(1)
	s.writeJSON(w, http.StatusOK, MessageResponse{
		Reply:      reply,
		Transcript: transcriptOf(h),
	})
}

// ============================================================================
// MODELS HANDLER
// ============================================================================

// handleModels handles GET /api/models.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.backend.ListModels(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "ollama_unavailable", err.Error())
		return
	}

	resp := ModelsResponse{
		Default: s.Defaults().Model,
		Models:  make([]ModelInfo, 0, len(models)),
	}
	for _, m := range models {
		resp.Models = append(resp.Models, ModelInfo{
			Name:   m.Name,
			Size:   m.FormatSize(),
			Family: m.Details.Family,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}
