package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"musicstream/internal/config"
	"musicstream/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate an empty catalogue with synthetic data",
	Long:  `Generates users, tracks and playlists when the store holds no users. A populated store is left unchanged.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Close()

		st, closeStore, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := seedCatalogue(cmd.Context(), st, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed %s: %d users, %d tracks, %d playlists\n",
			res.State, res.Users, res.Tracks, res.Playlists)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedCatalogue(ctx context.Context, st seed.Store, cfg *config.Config) (seed.Result, error) {
	seedCfg := seed.DefaultConfig()
	seedCfg.Users = cfg.Seed.Users
	seedCfg.Tracks = cfg.Seed.Tracks
	seedCfg.Seed = cfg.Seed.RandomSeed
	return seed.Run(ctx, st, seedCfg)
}
