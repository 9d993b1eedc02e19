package config

import (
	"errors"
	"fmt"

	"github.com/momo-data/momo-indexer/util"
	"github.com/spf13/cobra"
)

const (
	DefaultFeedCount = 10
	MaxFeedCount     = 50
)

type FeedConfig struct {
	Log   log
	Redis RedisConf
	Feed  feed
}

type feed struct {
	Count  int64 `mapstructure:"count"`
	Follow bool  `mapstructure:"follow"`
}

func SetupFeedFlags(conf *FeedConfig, cmd *cobra.Command) {
	SetupLogFlags(&conf.Log, cmd)
	SetupRedisFlags(&conf.Redis, cmd)
	cmd.Flags().Int64Var(&conf.Feed.Count, "feed.count", DefaultFeedCount, fmt.Sprintf("how many of the latest transactions to print, at most %d", MaxFeedCount))
	cmd.Flags().BoolVar(&conf.Feed.Follow, "feed.follow", false, "keep running and print the latest transactions after every processed batch")
}

func (conf *FeedConfig) Validate() error {
	if util.StrNotSet(conf.Redis.Addr) {
		return errors.New("redis addr must be set to read the transactions feed")
	}

	if conf.Feed.Count < 1 || conf.Feed.Count > MaxFeedCount {
		return fmt.Errorf("feed count must be between 1 and %d, got %d", MaxFeedCount, conf.Feed.Count)
	}

	return validateRedisConf(conf.Redis)
}

func CheckSuperfluousFeedKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)
	addRedisConfigKeys(validKeys)
	addDatabaseConfigKeys(validKeys)
	addFeedConfigKeys(validKeys)
	addCategorizeConfigKeys(validKeys)
	for _, key := range getValidConfigKeys(processBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	return superfluousKeys(keys, validKeys)
}

func addFeedConfigKeys(validKeys map[string]struct{}) {
	for _, key := range getValidConfigKeys(feed{}, "") {
		validKeys[key] = struct{}{}
	}
}
