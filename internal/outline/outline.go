// Package outline inspects the heading structure of generated summaries.
package outline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HighlightsHeading is the top-level heading every summary ends with.
const HighlightsHeading = "Article Highlights"

// Heading is one ATX or setext heading in document order.
type Heading struct {
	Level int
	Text  string
}

// Report summarizes how a Markdown document matches the summary layout.
type Report struct {
	Headings           []Heading
	Title              string // First H1 that is not the highlights heading
	TopLevel           int    // Number of H1 headings, highlights included
	Highlights         int    // Number of H1 "Article Highlights" headings
	EndsWithHighlights bool
}

// Inspect parses md and collects its headings.
func Inspect(md string) Report {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var r Report
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		r.Headings = append(r.Headings, Heading{Level: h.Level, Text: headingText(h, src)})
		return ast.WalkSkipChildren, nil
	})

	for _, h := range r.Headings {
		if h.Level != 1 {
			continue
		}
		r.TopLevel++
		if strings.EqualFold(h.Text, HighlightsHeading) {
			r.Highlights++
		} else if r.Title == "" {
			r.Title = h.Text
		}
	}
	if n := len(r.Headings); n > 0 {
		last := r.Headings[n-1]
		r.EndsWithHighlights = last.Level == 1 && strings.EqualFold(last.Text, HighlightsHeading)
	}
	return r
}

// Conforms reports whether the document has exactly one title heading and
// ends with a single highlights heading.
func (r Report) Conforms() bool {
	return r.TopLevel == 2 && r.Title != "" && r.Highlights == 1 && r.EndsWithHighlights
}

func headingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimSpace(buf.String())
}
