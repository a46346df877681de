// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/jeranaias/deepthink/internal/export"
	"github.com/jeranaias/deepthink/internal/session"
)

// ============================================================================
// EXPORT HANDLERS
// ============================================================================

// handleExportPage handles GET /export for the browser session.
func (s *Server) handleExportPage(w http.ResponseWriter, r *http.Request) {
	h, err := s.browserSession(w, r)
	if err != nil {
		http.Error(w, "could not start session", http.StatusInternalServerError)
		return
	}
	s.writeExport(w, r, h)
}

// handleExportSession handles GET /api/sessions/{id}/export.
func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeExport(w, r, h)
}

// writeExport sends the transcript as a download in the format named by
// the "format" query parameter (md, json or html; default md).
func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, h *session.Handle) {
	exp, err := export.ForFormat(r.URL.Query().Get("format"), nil)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	doc := export.NewDocument(h.Chat.Snapshot(), h.Chat.Params(), h.Theme())
	body, err := exp.Export(doc)
	if err != nil {
		if errors.Is(err, export.ErrEmptyDocument) {
			s.writeError(w, http.StatusNotFound, "empty_transcript", err.Error())
			return
		}
		log.Printf("EXPORT_FAILED | id=%s error=%v", h.ID, err)
		s.writeError(w, http.StatusInternalServerError, "export_failed", "could not export transcript")
		return
	}

	name := "deepthink-" + h.ID + exp.FileExtension()
	w.Header().Set("Content-Type", exp.MimeType()+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(name)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	log.Printf("TRANSCRIPT_EXPORTED | id=%s format=%s turns=%d", h.ID, exp.FileExtension(), len(doc.Turns))
}
