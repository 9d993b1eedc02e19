package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/db"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	cfgFile string // config file location to load
	rootCmd = &cobra.Command{
		Use:   "momo-indexer",
		Short: "A CLI tool for extracting transactions from MoMo SMS backups",
		Long: `momo-indexer reads Mobile Money SMS backups exported as XML, extracts the
		transfers to mobile numbers they contain and writes them to a JSON or CSV file.
		The categorize command reports every mobile money message by category. It also manages the users table of the MoMo data store.`,
		SilenceUsage: true,
	}
	viperConf = viper.New()
)

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(getViperConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file location (default is <CWD>/config.toml)")
}

func getViperConfig() {
	// variables from .env never override the real environment
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	v := viper.New()
	if err := config.BindEnvironment(v); err != nil {
		log.Fatalf("Failed to bind environment variables. Err: %v", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			// Find home directory.
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.momo-indexer", home)
		}
		v.AddConfigPath(cfgFile)
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	var noConfig bool
	err := v.ReadInConfig()
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "Config File \"config\" Not Found"):
			noConfig = true
		case strings.Contains(err.Error(), "incomplete number"):
			log.Fatalf("Failed to read config file %v. This usually means you forgot to wrap a string in quotes.", err)
		default:
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
	}

	if !noConfig {
		log.Println("CFG successfully read from: ", cfgFile)
	}

	viperConf = v
}

// Set config vars from config file or environment not already specified on command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				log.Fatalf("Failed to bind config file value %v. Err: %v", configName, err)
			}
		}
	})
}

func setupLogger(logLevel string, logPath string, prettyLogging bool) error {
	return config.DoConfigureLogger(logPath, logLevel, prettyLogging)
}

// setupStore prepares the commands that talk to the relational store. A missing
// connection string fails here, before any connection is attempted.
func setupStore(conf *config.StoreConfig) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, viperConf)

		if err := setupLogger(conf.Log.Level, conf.Log.Path, conf.Log.Pretty); err != nil {
			return err
		}

		ignoredKeys := config.CheckSuperfluousStoreKeys(viperConf.AllKeys())
		if len(ignoredKeys) > 0 {
			config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
		}

		if err := conf.Validate(); err != nil {
			config.Log.Error("Invalid database configuration", err)
			return err
		}
		return nil
	}
}

func connectToDBAndMigrate(dbConfig config.Database) (*gorm.DB, error) {
	database, err := db.PostgresDbConnect(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("could not establish connection to the database: %w", err)
	}

	sqldb, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxIdleConns(2)
	sqldb.SetMaxOpenConns(4)
	sqldb.SetConnMaxLifetime(time.Hour)

	err = db.MigrateModels(database)
	if err != nil {
		config.Log.Error("Error running DB migrations", err)
		return nil, err
	}

	return database, nil
}
