package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsum/internal/config"
	"github.com/dgallion1/docsum/internal/discover"
	"github.com/dgallion1/docsum/internal/parser"
	"github.com/dgallion1/docsum/internal/pipeline"
	"github.com/dgallion1/docsum/internal/summarize"
	"github.com/dgallion1/docsum/internal/tokenizer"
	"github.com/dgallion1/docsum/internal/watcher"
)

// DefaultOutputDir receives the Markdown summaries.
const DefaultOutputDir = "summaries"

type summarizeOptions struct {
	output   string
	pattern  string
	quiet    bool
	progress bool
	watch    bool
}

func newSummarizeCmd(opts *rootOptions) *cobra.Command {
	so := &summarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize <folder>",
		Short: "Summarize every document in a folder into Markdown",
		Long: `Summarize each matching document of a folder, one at a time, and write
<name>.md into the output folder. Documents larger than the chunk token limit
are summarized chunk by chunk and merged. A failed document is recorded in the
failure log and the batch moves on.

Examples:
  docsum summarize pdfs
  docsum summarize pdfs -o notes --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, opts, so, args[0])
		},
	}
	cmd.Flags().StringVarP(&so.output, "output", "o", DefaultOutputDir, "output folder for Markdown summaries")
	cmd.Flags().StringVarP(&so.pattern, "pattern", "p", "", "file pattern (default from config, *.pdf)")
	cmd.Flags().BoolVarP(&so.quiet, "quiet", "q", false, "only print the batch summary")
	cmd.Flags().BoolVar(&so.progress, "progress", true, "show a progress bar for chunked documents")
	cmd.Flags().BoolVarP(&so.watch, "watch", "w", false, "keep watching the folder for new documents")
	return cmd
}

func runSummarize(cmd *cobra.Command, opts *rootOptions, so *summarizeOptions, folder string) error {
	cfg := opts.cfg
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	pattern := so.pattern
	if pattern == "" {
		pattern = cfg.InputPattern
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	out := cmd.OutOrStdout()

	var obs pipeline.Observer = pipeline.NopObserver{}
	if !so.quiet {
		obs = newConsoleObserver(out, cmd.ErrOrStderr(), so.progress)
	}

	orch, client, err := buildOrchestrator(cfg, so.output, log, obs)
	if err != nil {
		return err
	}
	defer client.Close()

	files, err := discover.Files(folder, pattern)
	if errors.Is(err, discover.ErrNotDir) {
		return fmt.Errorf("folder not found: %s", folder)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("batch started", "folder", folder, "pattern", pattern, "documents", len(files), "model", client.Model())
	if len(files) == 0 {
		fmt.Fprintln(out, "No matching documents found in the specified folder.")
	} else {
		batch := orch.Run(ctx, files)
		printBatchSummary(out, batch, cfg.FailureLog)
		log.Info("batch finished", "saved", batch.Saved, "failed", batch.Failed)
	}

	if !so.watch {
		return nil
	}
	return watchFolder(ctx, out, folder, pattern, orch, log)
}

func watchFolder(ctx context.Context, out io.Writer, folder, pattern string, orch *pipeline.Orchestrator, log *slog.Logger) error {
	fmt.Fprintf(out, "\n%s %s %s\n", dimStyle.Render("Watching"), folder, dimStyle.Render("(Ctrl+C to stop)"))
	w := watcher.New(folder, pattern, watcher.DefaultDebounce, log)
	return w.Run(ctx, func(ctx context.Context, path string) {
		orch.Process(ctx, path)
	})
}

// buildOrchestrator assembles the pipeline shared by summarize and serve.
func buildOrchestrator(cfg config.Config, outputDir string, log *slog.Logger, obs pipeline.Observer) (*pipeline.Orchestrator, *summarize.Client, error) {
	prompt, err := summarize.LoadPrompt(cfg.PromptFile)
	if err != nil {
		return nil, nil, err
	}
	mergeTemplate := ""
	if cfg.MergePromptFile != "" {
		if mergeTemplate, err = summarize.LoadPrompt(cfg.MergePromptFile); err != nil {
			return nil, nil, err
		}
	}

	counter, err := tokenizer.New(cfg.TokenizerEncoding)
	if err != nil {
		return nil, nil, err
	}

	output, err := pipeline.NewDirWriter(outputDir)
	if err != nil {
		return nil, nil, err
	}

	client := summarize.NewClient(cfg)
	failures := pipeline.NewFileFailureLog(cfg.FailureLog)
	orch := pipeline.NewOrchestrator(cfg, prompt, pipeline.Deps{
		Extractor:  parser.Registry{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		Counter:    counter,
		Summarizer: client,
		Merger:     summarize.NewMerger(client, mergeTemplate),
		Output:     output,
		Failures:   failures,
		Observer:   obs,
		Log:        log,
	})

	encoding := tokenizer.EstimateEncoding
	if tk, ok := counter.(*tokenizer.Tiktoken); ok {
		encoding = tk.Encoding()
	}
	log.Debug("pipeline ready",
		"output", output.Dir(),
		"failure_log", failures.Path(),
		"chunk_token_limit", orch.Limit(),
		"encoding", encoding,
		"prompt", filepath.Base(cfg.PromptFile))
	return orch, client, nil
}
