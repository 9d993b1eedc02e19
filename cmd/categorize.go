package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/export"
	"github.com/momo-data/momo-indexer/parsers"
	"github.com/momo-data/momo-indexer/sms"
	"github.com/spf13/cobra"
)

var categorizeConfig config.CategorizeConfig

func init() {
	config.SetupCategorizeFlags(&categorizeConfig, categorizeCmd)
	rootCmd.AddCommand(categorizeCmd)
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Sorts every mobile money message of an SMS backup into a category report.",
	Long: `Reads an SMS backup XML file, sorts the messages of the mobile money sender into
	categories (incoming money, payments, transfers, deposits, withdrawals and more) and writes
	every message with its amount, counterparty, balance and fee, grouped by category and with
	per category totals, to a JSON report. The report is overwritten on every run. The process
	command and its output are not affected.`,
	PreRunE: setupCategorize,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCategorize(categorizeConfig, time.Now())
	},
}

func setupCategorize(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := categorizeConfig.Validate(); err != nil {
		return err
	}

	if err := setupLogger(categorizeConfig.Log.Level, categorizeConfig.Log.Path, categorizeConfig.Log.Pretty); err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousCategorizeKeys(viperConf.AllKeys())
	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	return nil
}

func runCategorize(conf config.CategorizeConfig, now time.Time) error {
	messages, err := sms.ReadFile(conf.Categorize.Input)
	if err != nil {
		if errors.Is(err, sms.ErrNotFound) {
			config.Log.Errorf("File '%s' not found. Place it in the working directory or pass --categorize.input.", conf.Categorize.Input)
		}
		return err
	}

	report := parsers.Categorize(messages, conf.Categorize.Sender, now)
	config.Log.Infof("Found %d SMS messages, %d from %s", len(messages), report.TotalSmsProcessed, conf.Categorize.Sender)

	if err := export.WriteReport(conf.Categorize.Output, report); err != nil {
		return fmt.Errorf("writing %s: %w", conf.Categorize.Output, err)
	}

	for _, category := range parsers.Categories {
		stats := report.Statistics[category]
		config.Log.ZInfo().
			Str("category", string(category)).
			Int("count", stats.Count).
			Str("total_rwf", stats.TotalAmount.String()).
			Str("average_rwf", stats.AverageAmount.String()).
			Msg("Category summary")
	}
	config.Log.Infof("Category report saved to '%s'", conf.Categorize.Output)
	return nil
}
