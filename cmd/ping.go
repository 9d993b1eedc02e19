package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/db"
	"github.com/spf13/cobra"
)

const pingTimeout = 10 * time.Second

var pingConfig config.StoreConfig

func init() {
	config.SetupStoreFlags(&pingConfig, pingCmd)
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:     "ping",
	Short:   "Checks that the database is reachable.",
	PreRunE: setupStore(&pingConfig),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
		defer cancel()

		if err := db.TestConnection(ctx, pingConfig.Database); err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}

		config.Log.Info("Successfully connected to the database")
		return nil
	},
}
