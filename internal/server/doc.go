// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the deepthink web front end and its JSON API.
//
// Each browser gets its own conversation, tracked by the deepthink_session
// cookie. API clients create sessions explicitly and address them by ID.
//
// # Page Endpoints
//
//   - GET  /        - the themed transcript and input form
//   - POST /submit  - send a message (form: text, temperature)
//   - POST /reset   - start a new conversation
//   - POST /theme   - toggle light/dark
//   - GET  /export  - download the transcript (?format=md|json|html)
//
// # API Endpoints
//
//   - POST   /api/sessions                 - create a session
//   - GET    /api/sessions/{id}            - session status
//   - DELETE /api/sessions/{id}            - end a session
//   - GET    /api/sessions/{id}/transcript - full transcript
//   - POST   /api/sessions/{id}/messages   - send a message, get the reply
//   - POST   /api/sessions/{id}/reset      - start over
//   - GET    /api/sessions/{id}/export     - download the transcript
//   - GET    /api/models                   - models installed in Ollama
//   - GET    /health                       - health check
//   - GET    /stats                        - usage counters
//
// # Usage
//
//	srv := server.New(server.DefaultOptions(), ollama.NewClient())
//	go srv.Start()
//	...
//	srv.Shutdown(ctx)
package server
