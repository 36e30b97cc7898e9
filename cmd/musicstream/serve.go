package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"musicstream/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Opens the store, seeds an empty catalogue when enabled and serves the REST, GraphQL and SOAP facades until interrupted.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Seed.Enabled {
		if _, err := seedCatalogue(ctx, st, cfg); err != nil {
			return fmt.Errorf("seed catalogue: %w", err)
		}
	}

	handler, err := server.NewHandler(st, cfg.CORS.AllowedOrigins)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().
		Str("store", cfg.Store.Driver).
		Strs("cors_origins", cfg.CORS.AllowedOrigins).
		Msg("musicstream starting")
	return server.Serve(ctx, srv)
}
