// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// FENCED CODE
// =============================================================================

// segment is a run of prose or one fenced code block.
type segment struct {
	code bool
	lang string
	text string
}

// splitFences splits text on ``` fences. An unclosed fence runs to the end.
func splitFences(text string) []segment {
	var (
		out    []segment
		buf    []string
		inCode bool
		lang   string
	)
	flush := func() {
		if len(buf) > 0 || inCode {
			out = append(out, segment{code: inCode, lang: lang, text: strings.Join(buf, "\n")})
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				flush()
				inCode, lang = false, ""
			} else {
				flush()
				inCode, lang = true, strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			}
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return out
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightHTML renders code as an inline-styled <pre> block. Token text is
// escaped by the formatter. ok is false when highlighting failed.
func highlightHTML(code, language string, dark bool) (html template.HTML, ok bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := "github"
	if dark {
		styleName = "monokai"
	}
	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := chromahtml.New(chromahtml.TabWidth(4)).Format(&buf, style, iterator); err != nil {
		return "", false
	}
	return template.HTML(buf.String()), true
}
