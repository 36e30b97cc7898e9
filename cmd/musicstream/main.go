package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"musicstream/internal/config"
	"musicstream/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "musicstream",
	Short: "Music catalogue served over REST, GraphQL and SOAP.",
	Long: `musicstream keeps users, tracks and playlists in one store and exposes
them through three equivalent facades: REST under /, GraphQL at /graphql and
SOAP at /ws. Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the global logger. Callers must
// close the returned logger.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	logging.SetGlobalLogger(logger)
	return cfg, logger, nil
}
