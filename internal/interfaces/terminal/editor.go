package terminal

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/nadiahindrianti/shesafe/internal/application/caseform"
)

// Editor holds the description as HTML. It is seeded once from the loaded
// case; Replace swaps in new content the way typing into the widget would.
type Editor struct {
	content  string
	seeded   bool
	replaced bool
}

// NewEditor creates an empty editor
func NewEditor() *Editor {
	return &Editor{}
}

// Seed sets the initial content. Content set with Replace before Seed wins.
func (e *Editor) Seed(html string) {
	if e.seeded || e.replaced {
		e.seeded = true
		return
	}
	e.content = html
	e.seeded = true
}

// Content returns the current HTML
func (e *Editor) Content() string {
	return e.content
}

// Replace sets the content
func (e *Editor) Replace(html string) {
	e.content = html
	e.replaced = true
}

// ReplaceFromFile loads the content from path. Files ending in .html or
// .htm are used as is; anything else is treated as plain text and each
// non-empty line becomes a paragraph.
func (e *Editor) ReplaceFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading description: %w", err)
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		e.Replace(string(data))
		return nil
	}
	e.Replace(TextToHTML(string(data)))
	return nil
}

// TextToHTML wraps each non-empty line of text in a paragraph
func TextToHTML(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}

var _ caseform.Editor = (*Editor)(nil)
