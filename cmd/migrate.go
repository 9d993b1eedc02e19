package cmd

import (
	"github.com/momo-data/momo-indexer/config"
	"github.com/spf13/cobra"
)

var migrateConfig config.StoreConfig

func init() {
	config.SetupStoreFlags(&migrateConfig, migrateCmd)
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates the users, sms_messages and transactions tables.",
	Long: `Creates the tables of the MoMo data store when they do not exist yet. Existing tables
	and their rows are left in place, so the command can be run any number of times.`,
	PreRunE: setupStore(&migrateConfig),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := connectToDBAndMigrate(migrateConfig.Database)
		if err != nil {
			return err
		}

		if sqldb, err := database.DB(); err == nil {
			defer sqldb.Close()
		}

		config.Log.Info("Database tables created successfully")
		return nil
	},
}
