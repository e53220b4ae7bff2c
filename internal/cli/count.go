package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsum/internal/discover"
	"github.com/dgallion1/docsum/internal/parser"
	"github.com/dgallion1/docsum/internal/tokenizer"
)

// DefaultCountFolder is scanned when count is given no folder.
const DefaultCountFolder = "pdfs"

func newCountCmd(opts *rootOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "count [folder]",
		Short: "Count tokens in each document of a folder",
		Long: `Count tokens in every matching document of a folder using the configured
tokenizer. No completion calls are made, so no API key is needed.

Examples:
  docsum count                # ./pdfs
  docsum count papers/2024`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := DefaultCountFolder
			if len(args) > 0 {
				folder = args[0]
			}
			if pattern == "" {
				pattern = opts.cfg.InputPattern
			}
			return runCount(cmd, opts, folder, pattern)
		},
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "file pattern (default from config, *.pdf)")
	return cmd
}

func runCount(cmd *cobra.Command, opts *rootOptions, folder, pattern string) error {
	out := cmd.OutOrStdout()
	log := newLogger(cmd.ErrOrStderr(), opts.cfg.LogLevel)

	files, err := discover.Files(folder, pattern)
	if errors.Is(err, discover.ErrNotDir) {
		return fmt.Errorf("folder not found: %s", folder)
	}
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No PDF files found in the specified folder.")
		return nil
	}

	counter, err := tokenizer.New(opts.cfg.TokenizerEncoding)
	if err != nil {
		return err
	}
	reg := parser.Registry{PDFFallbackPdftotext: opts.cfg.PDFFallbackPdftotext}

	total := 0
	for _, path := range files {
		doc, err := reg.Extract(path)
		if err != nil {
			log.Error("unreadable document", "file", filepath.Base(path), "error", err)
			return fmt.Errorf("count %s: %w", filepath.Base(path), err)
		}
		n := counter.CountTokens(doc.Text)
		total += n
		fmt.Fprintf(out, "%s tokens - %s\n", thousands(n), doc.Name)
	}

	fmt.Fprintf(out, "\nTotal tokens across all PDFs: %s\n", thousands(total))
	return nil
}
