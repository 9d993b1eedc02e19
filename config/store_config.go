package config

import (
	"github.com/spf13/cobra"
)

// StoreConfig is shared by every command that talks to the relational store.
type StoreConfig struct {
	Database Database
	Log      log
}

func SetupStoreFlags(conf *StoreConfig, cmd *cobra.Command) {
	SetupLogFlags(&conf.Log, cmd)
	SetupDatabaseFlags(&conf.Database, cmd)
}

func (conf *StoreConfig) Validate() error {
	return conf.Database.Validate()
}

func CheckSuperfluousStoreKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addDatabaseConfigKeys(validKeys)
	addLogConfigKeys(validKeys)
	// process keys may live in the same config file
	addRedisConfigKeys(validKeys)
	addFeedConfigKeys(validKeys)
	addCategorizeConfigKeys(validKeys)
	for _, key := range getValidConfigKeys(processBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	return superfluousKeys(keys, validKeys)
}
