package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/dgallion1/docsum/internal/document"
	"github.com/dgallion1/docsum/internal/pipeline"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// consoleObserver prints per-document status lines. With progress enabled
// the chunk loop is shown as a progress bar on errw instead of one line per
// chunk.
type consoleObserver struct {
	out      io.Writer
	errw     io.Writer
	progress bool
	bar      *progressbar.ProgressBar
}

func newConsoleObserver(out, errw io.Writer, progress bool) *consoleObserver {
	return &consoleObserver{out: out, errw: errw, progress: progress}
}

func (c *consoleObserver) DocumentStarted(name string) {
	fmt.Fprintf(c.out, "\n%s %s\n", headerStyle.Render("Processing:"), name)
}

func (c *consoleObserver) TokensCounted(name string, tokens, limit int, chunked bool) {
	fmt.Fprintf(c.out, "   %s %s tokens\n", dimStyle.Render("Token count:"), thousands(tokens))
	if chunked {
		fmt.Fprintln(c.out, warnStyle.Render(fmt.Sprintf("   Large file. Splitting into %s-token chunks.", thousands(limit))))
	}
}

func (c *consoleObserver) ChunkStarted(name string, chunk document.Chunk) {
	if !c.progress {
		fmt.Fprintf(c.out, "   Summarizing chunk %d of %d...\n", chunk.Index, chunk.Total)
		return
	}
	if c.bar == nil {
		c.bar = progressbar.NewOptions(chunk.Total,
			progressbar.OptionSetWriter(c.errw),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Summarizing chunks[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(c.errw)
			}),
		)
	}
	c.bar.Set(chunk.Index - 1)
}

func (c *consoleObserver) Merging(name string, parts int) {
	c.finishBar()
	fmt.Fprintf(c.out, "   Merging %d chunk summaries into one unified summary...\n", parts)
}

func (c *consoleObserver) DocumentFinished(res pipeline.Result) {
	c.finishBar()
	if res.Status == pipeline.StatusSaved {
		fmt.Fprintf(c.out, "%s %s\n", successStyle.Render("Summary saved to:"), res.OutputPath)
		return
	}
	var msg string
	switch res.Stage {
	case pipeline.StageExtract:
		msg = fmt.Sprintf("Could not read %s: %v", res.Name, res.Err)
	case pipeline.StageSummarizeChunks:
		msg = fmt.Sprintf("Chunk %d failed. Skipping file.", res.FailedAt)
	case pipeline.StageMerge:
		msg = "Final merge failed. Skipping file."
	case pipeline.StageSave:
		msg = fmt.Sprintf("Could not save summary: %v", res.Err)
	default:
		msg = "Summarization failed. Skipping file."
	}
	fmt.Fprintln(c.out, errorStyle.Render(msg))
}

func (c *consoleObserver) finishBar() {
	if c.bar == nil {
		return
	}
	c.bar.Finish()
	c.bar = nil
}

// printBatchSummary renders the totals box shown after a batch.
func printBatchSummary(w io.Writer, batch pipeline.BatchResult, failureLog string) {
	lines := []string{
		fmt.Sprintf("%s %d", dimStyle.Render("Documents:"), len(batch.Results)),
		fmt.Sprintf("%s %s", dimStyle.Render("Saved:    "), successStyle.Render(strconv.Itoa(batch.Saved))),
	}
	failed := strconv.Itoa(batch.Failed)
	if batch.Failed > 0 {
		failed = errorStyle.Render(failed)
		var names []string
		for _, r := range batch.Results {
			if r.Status == pipeline.StatusFailed {
				names = append(names, fmt.Sprintf("  - %s (%s)", r.Name, pipeline.Describe(r)))
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Failed:   "), failed))
		lines = append(lines, names...)
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("See:"), failureLog))
	} else {
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Failed:   "), failed))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryBoxStyle.Render(strings.Join(lines, "\n")))
}

// thousands formats n with comma separators, e.g. 25,000.
func thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
