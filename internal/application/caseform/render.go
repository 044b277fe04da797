package caseform

import (
	"strings"

	"golang.org/x/net/html"
)

// elements that count as content even without text
var mediaElements = map[string]bool{
	"img":    true,
	"video":  true,
	"iframe": true,
	"audio":  true,
}

// RenderedText returns the visible text of an HTML fragment with runs of
// whitespace collapsed. Markup-only fragments such as "<p><br></p>" yield "".
func RenderedText(fragment string) string {
	text, _ := render(fragment)
	return text
}

// HasContent reports whether fragment has visible text or embedded media
func HasContent(fragment string) bool {
	text, media := render(fragment)
	return text != "" || media
}

func render(fragment string) (string, bool) {
	if strings.TrimSpace(fragment) == "" {
		return "", false
	}

	var b strings.Builder
	media := false

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " "), media
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if mediaElements[string(name)] {
				media = true
			}
		}
	}
}
