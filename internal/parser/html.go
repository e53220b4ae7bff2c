package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Block-level tags end the current segment.
var htmlBlockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dt": true, "dd": true,
	"table": true, "tr": true, "td": true, "th": true, "caption": true, "figcaption": true,
	"br": true, "hr": true, "body": true,
}

// Content inside these tags is not article text.
var htmlSkipTags = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "header": true, "footer": true, "svg": true,
}

// HTMLExtractor streams an HTML page and returns its text blocks with
// whitespace collapsed. Navigation chrome and scripts are skipped.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(r io.Reader, filename string) ([]string, error) {
	z := html.NewTokenizer(r)

	var segments []string
	var buf strings.Builder
	skip := 0
	flush := func() {
		if text := strings.Join(strings.Fields(buf.String()), " "); text != "" {
			segments = append(segments, text)
		}
		buf.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse html: %w", err)
			}
			flush()
			return segments, nil

		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if htmlSkipTags[tag] {
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
				continue
			}
			if skip == 0 && htmlBlockTags[tag] {
				flush()
			}

		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		}
	}
}
