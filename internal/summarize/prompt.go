package summarize

import (
	"fmt"
	"os"
	"strings"
)

const (
	// FilenamePlaceholder in a prompt is replaced by the document's filename.
	FilenamePlaceholder = "{{FILENAME}}"
	// SummariesPlaceholder in a merge template marks where the partial
	// summaries are inserted.
	SummariesPlaceholder = "{{SUMMARIES}}"
)

// MergeTemplate is the built-in merge instruction. The section layout is an
// output format contract for the note-taking vault that consumes the files.
const MergeTemplate = `You are given several partial summaries of one academic article. Synthesize them into one unified Markdown summary using the structure below.

Put the article title in Heading level 1.
Put the label Summary in Heading level 2, and add a 2-3 sentence high-level summary.
Put the label Authors in Heading level 2, and format author names like [[@John Smith]].
Put the label Publication Date in Heading level 2.
Put the label File Name in Heading level 2, and insert: ` + "`" + FilenamePlaceholder + "`" + `
Put the label Keywords in Heading level 2 using #tag format.
Put the label Overview in Heading level 2.
Put the label Key Concepts in Heading level 2 as 7–10 bullet points.
Put the label My Notes in Heading level 2, and leave it blank.
Add a '---' separator and end with a Heading level 1 labeled 'Article Highlights'.

Here are the partial summaries:
` + SummariesPlaceholder

// LoadPrompt reads a prompt template file.
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", path, err)
	}
	return string(data), nil
}

// WithFilename substitutes every filename placeholder in prompt.
func WithFilename(prompt, filename string) string {
	return strings.ReplaceAll(prompt, FilenamePlaceholder, filename)
}

// BuildPayload is the single user message sent for one summarization call.
func BuildPayload(prompt, text string) string {
	return prompt + "\n\n" + text
}

// BuildMergePrompt fills template with the filename and the partial
// summaries, in order, separated by blank lines. Templates without a
// summaries placeholder get the summaries appended.
func BuildMergePrompt(template, filename string, summaries []string) string {
	if template == "" {
		template = MergeTemplate
	}
	prompt := WithFilename(template, filename)
	joined := strings.Join(summaries, "\n\n")
	if !strings.Contains(prompt, SummariesPlaceholder) {
		return prompt + "\n" + joined
	}
	return strings.Replace(prompt, SummariesPlaceholder, joined, 1)
}
