// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/deepthink/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders doc as Markdown with optional YAML frontmatter.
func (e *MarkdownExporter) Export(doc Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "title: %s\n", escapeYAML(doc.Title))
		fmt.Fprintf(&sb, "model: %s\n", escapeYAML(doc.Model))
		fmt.Fprintf(&sb, "temperature: %.2f\n", doc.Temperature)
		fmt.Fprintf(&sb, "turns: %d\n", len(doc.Turns))
		fmt.Fprintf(&sb, "exported: %s\n", doc.Exported.Format(time.RFC3339))
		sb.WriteString("generator: deepthink\n")
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(doc.Title))

	if e.options.IncludeMetadata {
		fmt.Fprintf(&sb, "- **Model**: %s\n", doc.Model)
		fmt.Fprintf(&sb, "- **Temperature**: %.2f\n", doc.Temperature)
		fmt.Fprintf(&sb, "- **Exported**: %s\n", formatTimestamp(doc.Exported))
		sb.WriteString("\n---\n\n")
	}

	for i, turn := range doc.Turns {
		label := roleLabel(turn.Role)
		if e.options.IncludeTimestamps && !turn.Timestamp.IsZero() {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(turn.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		text := strings.TrimSpace(turn.Text)
		if turn.IsSystem() {
			text = "> " + strings.ReplaceAll(text, "\n", "\n> ")
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")

		if i < len(doc.Turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	fmt.Fprintf(&sb, "\n---\n\n*Exported from DeepThink on %s*\n", formatTimestamp(doc.Exported))
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// roleLabel returns the heading for a turn.
func roleLabel(r model.Role) string {
	switch r {
	case model.RoleUser:
		return "👤 " + r.DisplayName()
	case model.RoleAssistant:
		return "🤖 " + r.DisplayName()
	default:
		return r.DisplayName()
	}
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break formatting in headings.
func escapeMarkdown(s string) string {
	return strings.NewReplacer(
		"#", `\#`,
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
	).Replace(s)
}

// escapeYAML quotes a frontmatter value when it holds special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return "\"" + s + "\""
	}
	return s
}
