package caseform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderedText(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		text    string
		content bool
	}{
		{name: "empty", html: "", text: "", content: false},
		{name: "blank editor", html: "<p><br></p>", text: "", content: false},
		{name: "whitespace paragraphs", html: "<p> </p><p>\n</p>", text: "", content: false},
		{name: "simple", html: "<p>x</p>", text: "x", content: true},
		{name: "nested", html: "<p>Saya <strong>dilecehkan</strong></p><p>di halte</p>", text: "Saya dilecehkan di halte", content: true},
		{name: "entity", html: "<p>a &amp; b</p>", text: "a & b", content: true},
		{name: "image only", html: `<p><img src="x.png"></p>`, text: "", content: true},
		{name: "plain text", html: "just text", text: "just text", content: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, RenderedText(tt.html))
			assert.Equal(t, tt.content, HasContent(tt.html))
		})
	}
}
