package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/export"
	"github.com/momo-data/momo-indexer/parsers"
	"github.com/momo-data/momo-indexer/pkg/repository"
	"github.com/momo-data/momo-indexer/sms"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	processConfig config.ProcessConfig
	validFormats  = export.GetFormats()
)

func init() {
	config.SetupLogFlags(&processConfig.Log, processCmd)
	config.SetupRedisFlags(&processConfig.Redis, processCmd)
	config.SetupProcessSpecificFlags(validFormats, &processConfig, processCmd)
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extracts transfers to mobile numbers from an SMS backup.",
	Long: `Reads an SMS backup XML file, keeps the messages describing a transfer to a mobile
	number and writes their type, amount, recipient and raw text to the output file. The output
	file is overwritten on every run.`,
	PreRunE: setupProcess,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context(), processConfig)
	},
}

func setupProcess(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	err := processConfig.Validate(validFormats)
	if err != nil {
		return err
	}

	if err := setupLogger(processConfig.Log.Level, processConfig.Log.Path, processConfig.Log.Pretty); err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousProcessKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	return nil
}

func runProcess(ctx context.Context, conf config.ProcessConfig) error {
	runLog := config.Log.With("run_id", uuid.NewString())

	messages, err := sms.ReadFile(conf.Base.Input)
	if err != nil {
		if errors.Is(err, sms.ErrNotFound) {
			runLog.Error().Msgf("File '%s' not found. Place it in the working directory or pass --base.input.", conf.Base.Input)
		}
		return err
	}

	transactions := parsers.ProcessMessages(messages)

	if err := export.WriteFile(conf.Base.Output, conf.Base.Format, transactions); err != nil {
		return fmt.Errorf("writing %s: %w", conf.Base.Output, err)
	}

	summary := parsers.Summarize(messages, transactions)
	event := runLog.Info().
		Int("messages", summary.Messages).
		Int("transactions", summary.Transactions).
		Int("missing_amount", summary.MissingAmount).
		Str("total_rwf", summary.Total.String())
	if !summary.First.IsZero() {
		event = event.Time("first_message", summary.First).Time("last_message", summary.Last)
	}
	event.Msgf("Transfer to mobile transactions processed and saved to '%s'", conf.Base.Output)

	if conf.Redis.Enabled() {
		return feedTransactions(ctx, runLog, conf.Redis, transactions)
	}
	return nil
}

func feedTransactions(ctx context.Context, runLog zerolog.Logger, redisConf config.RedisConf, transactions []parsers.Transaction) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})
	defer rdb.Close()

	cache := repository.NewCache(rdb)
	if err := cache.AddTransactions(ctx, transactions); err != nil {
		runLog.Error().Err(err).Msg("Error adding transactions to the feed")
		return err
	}

	if err := cache.PublishBatch(ctx, len(transactions)); err != nil {
		runLog.Error().Err(err).Msg("Error publishing transactions batch")
		return err
	}

	runLog.Info().Msgf("Added %d transactions to the feed at %s", len(transactions), redisConf.Addr)
	return nil
}
