// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ui/styles"
	"github.com/jeranaias/deepthink/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export renders doc in the target format.
	Export(doc Document) ([]byte, error)

	// FileExtension returns the file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// ErrEmptyDocument is returned when there are no turns to export.
var ErrEmptyDocument = errors.New("transcript has no turns")

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the exported view of one conversation.
type Document struct {
	Title       string       `json:"title"`
	Model       string       `json:"model"`
	Temperature float64      `json:"temperature"`
	Theme       styles.Mode  `json:"theme"`
	Exported    time.Time    `json:"exported"`
	Turns       []model.Turn `json:"turns"`
}

// maxTitleRunes bounds titles taken from the first user message.
const maxTitleRunes = 50

// NewDocument builds a document from a transcript snapshot. The title is the
// first user message.
func NewDocument(turns []model.Turn, params chat.Params, theme styles.Mode) Document {
	title := "New conversation"
	for _, t := range turns {
		if t.IsUser() {
			title = util.TruncateRunes(strings.Join(strings.Fields(t.Text), " "), maxTitleRunes)
			break
		}
	}
	return Document{
		Title:       title,
		Model:       params.Model,
		Temperature: params.Temperature,
		Theme:       theme,
		Exported:    time.Now(),
		Turns:       turns,
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds a header with the model, temperature and dates.
	IncludeMetadata bool

	// IncludeTimestamps adds per-turn times.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

// ForFormat returns the exporter for a format name: "md", "markdown",
// "json" or "html".
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (want md, json or html)", ErrUnknownFormat, name)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// WriteFile exports doc into dir and returns the path written. The file
// name is derived from the title and the export time.
func WriteFile(doc Document, exporter Exporter, dir string) (string, error) {
	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	filename := fmt.Sprintf("deepthink_%s_%s%s",
		sanitizeFilename(doc.Title),
		doc.Exported.Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(dir, filename)

	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateRunes(s, maxTitleRunes)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "conversation"
	}
	return b.String()
}

func checkDocument(doc Document) error {
	if len(doc.Turns) == 0 {
		return ErrEmptyDocument
	}
	return nil
}

// formatTimestamp formats a timestamp for headers.
func formatTimestamp(t time.Time) string {
	return t.Format("January 2, 2006 at 3:04 PM")
}

// formatShortTimestamp formats a timestamp for per-turn labels.
func formatShortTimestamp(t time.Time) string {
	return t.Format("3:04 PM")
}
