package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/pkg/consumer"
	"github.com/momo-data/momo-indexer/pkg/repository"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var feedConfig config.FeedConfig

func init() {
	config.SetupFeedFlags(&feedConfig, feedCmd)
	rootCmd.AddCommand(feedCmd)
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Prints the latest transactions added to the redis feed.",
	Long: `Prints the most recent transactions that process runs added to the redis feed. With
	--feed.follow the command keeps running and prints them again after every new batch.`,
	PreRunE: setupFeed,
	RunE: func(cmd *cobra.Command, args []string) error {
		rdb := redis.NewClient(&redis.Options{
			Addr:     feedConfig.Redis.Addr,
			Password: feedConfig.Redis.Password,
			DB:       feedConfig.Redis.DB,
		})
		defer rdb.Close()

		feed := consumer.NewFeedConsumer(repository.NewCache(rdb), cmd.OutOrStdout(), feedConfig.Feed.Count)
		if !feedConfig.Feed.Follow {
			return feed.PrintLatest(cmd.Context())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := feed.PrintLatest(ctx); err != nil {
			return err
		}
		return feed.RunFeed(ctx)
	},
}

func setupFeed(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := feedConfig.Validate(); err != nil {
		return err
	}

	if err := setupLogger(feedConfig.Log.Level, feedConfig.Log.Path, feedConfig.Log.Pretty); err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousFeedKeys(viperConf.AllKeys())
	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	return nil
}
