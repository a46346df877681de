// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript out as Markdown, JSON or
// a themed standalone HTML page.
//
// # Key Types
//
//   - Document: a transcript snapshot plus the parameters it was made with
//   - Exporter: one output format
//   - Options: metadata and timestamp switches
//
// # Usage
//
//	doc := export.NewDocument(sess.Snapshot(), sess.Params(), styles.ModeDark)
//	exp, err := export.ForFormat("md", nil)
//	path, err := export.WriteFile(doc, exp, ".")
package export
