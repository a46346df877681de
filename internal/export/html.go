// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"html/template"

	"github.com/jeranaias/deepthink/internal/ui/styles"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

var htmlTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="deepthink">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body class="{{.Theme}}">
<h1>🧠 {{.Title}}</h1>
{{if .Meta}}<p class="subtitle">{{.Model}} · temperature {{printf "%.2f" .Temperature}} · {{.Exported}}</p>{{end}}
{{range .Turns}}<div class="bubble {{.Class}}"><span class="label">{{.Label}}{{if .Time}} <small>{{.Time}}</small>{{end}}</span>{{range .Parts}}{{if .Code}}{{.Code}}{{else}}{{.Text}}{{end}}{{end}}</div>
{{end}}
<p class="subtitle pending">Exported from DeepThink</p>
</body>
</html>
`))

type htmlTurn struct {
	Class string
	Label string
	Time  string
	Parts []htmlPart
}

// htmlPart is escaped prose or a highlighted code block.
type htmlPart struct {
	Text string
	Code template.HTML
}

type htmlData struct {
	Title       string
	CSS         template.CSS
	Theme       styles.Mode
	Meta        bool
	Model       string
	Temperature float64
	Exported    string
	Turns       []htmlTurn
}

// HTMLExporter exports a standalone page styled like the web front end,
// in the document's theme.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export renders doc as HTML. All transcript text is escaped.
func (e *HTMLExporter) Export(doc Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	theme := doc.Theme
	if theme != styles.ModeDark {
		theme = styles.ModeLight
	}

	data := htmlData{
		Title:       doc.Title,
		CSS:         template.CSS(styles.CSS(theme)),
		Theme:       theme,
		Meta:        e.options.IncludeMetadata,
		Model:       doc.Model,
		Temperature: doc.Temperature,
		Exported:    formatTimestamp(doc.Exported),
	}
	for _, turn := range doc.Turns {
		t := htmlTurn{
			Class: turn.Role.String(),
			Label: roleLabel(turn.Role) + ":",
			Parts: []htmlPart{{Text: turn.Text}},
		}
		if turn.IsAssistant() {
			t.Parts = renderParts(turn.Text, theme.IsDark())
		}
		if turn.IsSystem() {
			// The greeting shares the assistant bubble.
			t.Class = "assistant pending"
		}
		if e.options.IncludeTimestamps && !turn.Timestamp.IsZero() {
			t.Time = formatShortTimestamp(turn.Timestamp)
		}
		data.Turns = append(data.Turns, t)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderParts highlights the fenced code blocks in text.
func renderParts(text string, dark bool) []htmlPart {
	var parts []htmlPart
	for _, seg := range splitFences(text) {
		if seg.code {
			if code, ok := highlightHTML(seg.text, seg.lang, dark); ok {
				parts = append(parts, htmlPart{Code: code})
				continue
			}
		}
		parts = append(parts, htmlPart{Text: seg.text})
	}
	return parts
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}
