package config

import (
	"errors"
	"fmt"

	"github.com/momo-data/momo-indexer/util"
	"github.com/spf13/cobra"
)

const (
	DefaultReportFile = "momo_transactions.json"
	DefaultSender     = "M-Money"
)

type CategorizeConfig struct {
	Log        log
	Categorize categorize
}

type categorize struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Sender string `mapstructure:"sender"`
}

func SetupCategorizeFlags(conf *CategorizeConfig, cmd *cobra.Command) {
	SetupLogFlags(&conf.Log, cmd)
	cmd.Flags().StringVar(&conf.Categorize.Input, "categorize.input", DefaultInputFile, "the SMS backup XML file to read")
	cmd.Flags().StringVar(&conf.Categorize.Output, "categorize.output", DefaultReportFile, "the file the category report is written to (overwritten)")
	cmd.Flags().StringVar(&conf.Categorize.Sender, "categorize.sender", DefaultSender, "only messages from this address are categorized")
}

func (conf *CategorizeConfig) Validate() error {
	if util.StrNotSet(conf.Categorize.Input) {
		return errors.New("categorize input must be set")
	}

	if util.StrNotSet(conf.Categorize.Output) {
		return errors.New("categorize output must be set")
	}

	if conf.Categorize.Input == conf.Categorize.Output {
		return fmt.Errorf("input and output must be different files, got %s for both", conf.Categorize.Input)
	}

	if util.StrNotSet(conf.Categorize.Sender) {
		return errors.New("categorize sender must be set")
	}

	return nil
}

func CheckSuperfluousCategorizeKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)
	addCategorizeConfigKeys(validKeys)
	// the other commands share the same config file
	addRedisConfigKeys(validKeys)
	addDatabaseConfigKeys(validKeys)
	addFeedConfigKeys(validKeys)
	for _, key := range getValidConfigKeys(processBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	return superfluousKeys(keys, validKeys)
}

func addCategorizeConfigKeys(validKeys map[string]struct{}) {
	for _, key := range getValidConfigKeys(categorize{}, "") {
		validKeys[key] = struct{}{}
	}
}
