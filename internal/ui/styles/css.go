// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"bytes"
	"text/template"
)

var cssTemplate = template.Must(template.New("css").Parse(`
body {
	background-color: {{.Background}};
	color: {{.Text}};
	font-family: "Segoe UI", Tahoma, Geneva, Verdana, sans-serif;
	margin: 0 auto;
	max-width: 860px;
	padding: 1.5rem;
}
h1, h2, h3 { color: {{.Header}}; text-align: center; }
.subtitle { text-align: center; opacity: 0.8; margin-top: -0.5rem; }
.bubble {
	border: 1px solid {{.Border}};
	border-radius: 15px;
	padding: 0.75rem 1rem;
	margin: 0.5rem 0;
	line-height: 1.5;
	white-space: pre-wrap;
	word-wrap: break-word;
}
.bubble.user { background-color: {{.UserBubble}}; margin-left: 15%; }
.bubble.assistant { background-color: {{.BotBubble}}; margin-right: 15%; }
.bubble .label { display: block; font-weight: bold; margin-bottom: 0.25rem; }
.pending { font-style: italic; opacity: 0.8; }
form { margin: 0.75rem 0; }
input[type=text] {
	width: 100%;
	box-sizing: border-box;
	padding: 0.6rem;
	border: 1px solid {{.Border}};
	border-radius: 10px;
	background-color: {{.BotBubble}};
	color: {{.Text}};
}
input[type=text]:focus { outline: none; border-color: {{.Focus}}; box-shadow: 0 0 5px {{.Focus}}; }
input[type=range] { accent-color: {{.Button}}; width: 100%; }
button {
	background-color: {{.Button}};
	color: white;
	border: none;
	border-radius: 10px;
	padding: 0.5rem 1rem;
	cursor: pointer;
}
button:hover { background-color: {{.ButtonHover}}; }
.controls { display: flex; gap: 0.5rem; justify-content: space-between; }
`))

// CSS renders the page stylesheet for m.
func CSS(m Mode) string {
	var buf bytes.Buffer
	// The template only reads string fields of a fixed struct.
	_ = cssTemplate.Execute(&buf, PaletteFor(m))
	return buf.String()
}
