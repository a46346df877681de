// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the deepthink packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis, used for log lines
//   - TruncateWidth: display-width aware truncation for terminal output
//   - NormalizeInput: NFC normalization and trimming of user submissions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	display := util.TruncateRunes(longText, 50)
//	text := util.NormalizeInput(raw)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
