package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/momo-data/momo-indexer/util"
	"github.com/spf13/cobra"
)

const (
	DefaultInputFile  = "momo_sms.xml"
	DefaultOutputFile = "transfers_to_mobile.json"
)

type ProcessConfig struct {
	Log   log
	Redis RedisConf
	Base  processBase
}

type processBase struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Format string `mapstructure:"format"`
}

func SetupProcessSpecificFlags(validFormats []string, conf *ProcessConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Input, "base.input", DefaultInputFile, "the SMS backup XML file to read")
	cmd.Flags().StringVar(&conf.Base.Output, "base.output", DefaultOutputFile, "the file the extracted transactions are written to (overwritten)")
	defaultFormat := ""
	if len(validFormats) != 0 {
		defaultFormat = validFormats[0]
	}

	cmd.Flags().StringVar(&conf.Base.Format, "base.format", defaultFormat, "The format to output")
}

func (conf *ProcessConfig) Validate(validFormats []string) error {
	if !slices.Contains(validFormats, conf.Base.Format) {
		return fmt.Errorf("invalid format %s, valid formats are %s", conf.Base.Format, validFormats)
	}

	if util.StrNotSet(conf.Base.Input) {
		return errors.New("base input must be set")
	}

	if util.StrNotSet(conf.Base.Output) {
		return errors.New("base output must be set")
	}

	if conf.Base.Input == conf.Base.Output {
		return fmt.Errorf("input and output must be different files, got %s for both", conf.Base.Input)
	}

	return validateRedisConf(conf.Redis)
}

func CheckSuperfluousProcessKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)
	addRedisConfigKeys(validKeys)
	// the database section is shared with the store commands in a single config file
	addDatabaseConfigKeys(validKeys)
	addFeedConfigKeys(validKeys)
	addCategorizeConfigKeys(validKeys)

	// add base keys
	for _, key := range getValidConfigKeys(processBase{}, "base") {
		validKeys[key] = struct{}{}
	}

	return superfluousKeys(keys, validKeys)
}
