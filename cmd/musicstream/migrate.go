package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"musicstream/internal/config"
	"musicstream/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(store.Up), string(store.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Close()

		if cfg.Store.Driver != config.DriverPostgres {
			return errors.New("migrate requires STORE_DRIVER=postgres")
		}

		db, err := openDatabase(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		direction := store.Direction(args[0])
		if err := store.Migrate(cmd.Context(), db, direction); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", direction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
