// Package cli wires the docsum commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docsum/internal/config"
)

type rootOptions struct {
	cfgFile  string
	logLevel string
	cfg      config.Config
}

// NewRootCmd builds the command tree. out receives user-facing output and
// errw receives logs and progress bars.
func NewRootCmd(out, errw io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "docsum",
		Short: "Summarize academic PDFs into templated Markdown notes",
		Long: `docsum extracts text from documents, counts tokens, splits oversized
documents into chunks, summarizes them with a chat completion API and writes
one Markdown summary per document.

Example usage:
  docsum count pdfs                 # Token counts per PDF
  docsum summarize pdfs -o notes    # Summarize every PDF in ./pdfs
  docsum serve                      # HTTP API`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errw)

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultFile, "config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newCountCmd(opts))
	root.AddCommand(newSummarizeCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

// Execute runs the docsum CLI against the process's stdio.
func Execute() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteAs runs a single subcommand as if it were the whole program, for
// the standalone count-tokens and summarize binaries.
func ExecuteAs(name string) {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(append([]string{name}, os.Args[1:]...))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger returns a text logger for interactive commands, tagged with a
// fresh run ID so lines from one invocation can be grouped.
func newLogger(w io.Writer, level string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h).With("run_id", uuid.NewString())
}
