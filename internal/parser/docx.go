package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXExtractor returns body paragraphs and table rows in document order.
// A table row becomes one segment with its cells joined by " | ".
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(r io.Reader, filename string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var segments []string
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			segments = appendNonEmpty(segments, paragraphText(it))
		case *docx.Table:
			segments = append(segments, tableRows(it)...)
		}
	}
	return segments, nil
}

func tableRows(t *docx.Table) []string {
	var rows []string
	for _, row := range t.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, para := range cell.Paragraphs {
				parts = appendNonEmpty(parts, paragraphText(para))
			}
			cells = append(cells, strings.Join(parts, " "))
			for _, nested := range cell.Tables {
				rows = append(rows, tableRows(nested)...)
			}
		}
		rows = appendNonEmpty(rows, strings.Trim(strings.Join(cells, " | "), " |"))
	}
	return rows
}

func paragraphText(para *docx.Paragraph) string {
	var b strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch v := rc.(type) {
			case *docx.Text:
				b.WriteString(v.Text)
			case *docx.Tab:
				b.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func appendNonEmpty(dst []string, s string) []string {
	if s == "" {
		return dst
	}
	return append(dst, s)
}
