package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docsum/internal/api"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the summarization pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", DefaultOutputDir, "output folder for Markdown summaries")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, output string) error {
	cfg := opts.cfg
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})).
		With("run_id", uuid.NewString())

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return fmt.Errorf("invalid configuration: %w", err)
	}

	orch, client, err := buildOrchestrator(cfg, output, log, nil)
	if err != nil {
		return err
	}
	defer client.Close()

	srv := api.NewServer(orch, client, log, cfg)

	// Chunked documents make several sequential completion calls per request.
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docsum", "port", cfg.Port, "model", client.Model(), "auth", cfg.ServerAPIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}
