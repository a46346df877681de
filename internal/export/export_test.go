// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/deepthink/internal/chat"
	"github.com/jeranaias/deepthink/internal/model"
	"github.com/jeranaias/deepthink/internal/ui/styles"
)

func testDocument(userText, reply string) Document {
	turns := []model.Turn{
		model.NewTurn(model.RoleSystem, model.DefaultGreeting),
		model.NewTurn(model.RoleUser, userText),
		model.NewTurn(model.RoleAssistant, reply),
	}
	return NewDocument(turns, chat.Params{Model: "deepseek-r1:7b", Temperature: 0.7}, styles.ModeDark)
}

func TestNewDocument_Title(t *testing.T) {
	doc := testDocument("What is   the\nmeaning of life?", "42")
	if doc.Title != "What is the meaning of life?" {
		t.Errorf("Title = %q", doc.Title)
	}

	greetingOnly := NewDocument([]model.Turn{model.NewTurn(model.RoleSystem, "hi")}, chat.DefaultParams(), styles.ModeLight)
	if greetingOnly.Title != "New conversation" {
		t.Errorf("Title without user turns = %q", greetingOnly.Title)
	}

	long := testDocument(strings.Repeat("a", 80), "ok")
	if n := len([]rune(long.Title)); n != maxTitleRunes {
		t.Errorf("long title has %d runes, want %d", n, maxTitleRunes)
	}
}

func TestMarkdownExport(t *testing.T) {
	doc := testDocument("Hello", "**Greetings**")
	out, err := NewMarkdownExporter(nil).Export(doc)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)

	for _, want := range []string{
		`model: "deepseek-r1:7b"`,
		"temperature: 0.70",
		"# Hello",
		"### 👤 User",
		"### 🤖 DeepThink",
		"**Greetings**",
		"> " + model.DefaultGreeting,
	} {
		if !strings.Contains(result, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownExport_NoMetadata(t *testing.T) {
	out, err := NewMarkdownExporter(&Options{}).Export(testDocument("Hello", "Hi"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(string(out), "---") || strings.Contains(string(out), "<sub>") {
		t.Error("metadata and timestamps should be omitted")
	}
}

// A title with a newline must not inject frontmatter keys.
func TestMarkdownExport_YAMLNewlineEscaped(t *testing.T) {
	doc := testDocument("x", "y")
	doc.Title = "Test\nInjection: malicious"

	out, err := NewMarkdownExporter(nil).Export(doc)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(out), "\n")
	for i := 1; i < 10 && i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "Injection:") {
			t.Error("newline in title was not escaped in frontmatter")
		}
	}
	if !strings.Contains(string(out), `title: "Test\nInjection: malicious"`) {
		t.Error("expected quoted, escaped title")
	}
}

func TestHTMLExport_EscapesText(t *testing.T) {
	doc := testDocument("<script>alert('xss')</script>", "<b>bold</b>")
	out, err := NewHTMLExporter(nil).Export(doc)
	if err != nil {
		t.Fatal(err)
	}
	result := string(out)

	if strings.Contains(result, "<script>alert") || strings.Contains(result, "<b>bold</b>") {
		t.Error("transcript text must be escaped")
	}
	if !strings.Contains(result, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if !strings.Contains(result, styles.DarkPalette.Background) {
		t.Error("dark theme palette should be embedded")
	}
}

func TestJSONExport(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(testDocument("Hello", "Hi"))
	if err != nil {
		t.Fatal(err)
	}

	var got Document
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Turns) != 3 || got.Turns[1].Role != model.RoleUser || got.Model != "deepseek-r1:7b" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestExport_EmptyDocument(t *testing.T) {
	for _, name := range []string{"md", "json", "html"} {
		exp, err := ForFormat(name, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := exp.Export(Document{}); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("%s: err = %v, want ErrEmptyDocument", name, err)
		}
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"", ".md"},
		{"markdown", ".md"},
		{".JSON", ".json"},
		{"html", ".html"},
	}
	for _, tt := range tests {
		exp, err := ForFormat(tt.name, nil)
		if err != nil {
			t.Errorf("ForFormat(%q) error = %v", tt.name, err)
			continue
		}
		if exp.FileExtension() != tt.ext {
			t.Errorf("ForFormat(%q) ext = %s, want %s", tt.name, exp.FileExtension(), tt.ext)
		}
	}

	if _, err := ForFormat("pdf", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForFormat(pdf) err = %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	doc := testDocument("What/is:this?", "ok")

	path, err := WriteFile(doc, NewMarkdownExporter(nil), dir)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "deepthink_What-is-this-_") || !strings.HasSuffix(base, ".md") {
		t.Errorf("file name = %s", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ok") {
		t.Error("file content missing reply")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello_world"},
		{`a/b\c:d`, "a-b-c-d"},
		{"tab\there", "tab_here"},
		{"bell\x07", "bell-"},
		{"", "conversation"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitFences(t *testing.T) {
	text := "Here:\n```go\nfunc main() {}\n```\nDone.\n```\nunclosed"
	segs := splitFences(text)

	if len(segs) != 4 {
		t.Fatalf("got %d segments: %+v", len(segs), segs)
	}
	if segs[0].code || segs[0].text != "Here:" {
		t.Errorf("segment 0 = %+v", segs[0])
	}
	if !segs[1].code || segs[1].lang != "go" || segs[1].text != "func main() {}" {
		t.Errorf("segment 1 = %+v", segs[1])
	}
	if segs[2].code || segs[2].text != "Done." {
		t.Errorf("segment 2 = %+v", segs[2])
	}
	if !segs[3].code || segs[3].text != "unclosed" {
		t.Errorf("segment 3 = %+v", segs[3])
	}
}

func TestHTMLExport_HighlightsCode(t *testing.T) {
	doc := testDocument("Show me", "Sure:\n```html\n<script>alert(1)</script>\n```")
	out, err := NewHTMLExporter(nil).Export(doc)
	if err != nil {
		t.Fatal(err)
	}
	result := string(out)

	if !strings.Contains(result, "<pre") {
		t.Error("code block should be rendered as <pre>")
	}
	if strings.Contains(result, "<script>") || strings.Contains(result, "```") {
		t.Error("code must be escaped and fences removed")
	}
	if !strings.Contains(result, "Sure:") {
		t.Error("prose before the fence should be kept")
	}
}
