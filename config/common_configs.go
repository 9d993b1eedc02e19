package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/momo-data/momo-indexer/util"
	"github.com/spf13/cobra"
)

// ErrMissingConnectionString is returned when no store connection string was configured.
var ErrMissingConnectionString = errors.New("database connection-string must be set (flag, config file or DATABASE_URL)")

// These configs are used across multiple commands, and are not specific to a single command
type log struct {
	Level  string
	Path   string
	Pretty bool
}

type Database struct {
	ConnectionString string `mapstructure:"connection-string"`
	LogLevel         string `mapstructure:"log-level"`
}

type RedisConf struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis address was configured.
func (r RedisConf) Enabled() bool {
	return !util.StrNotSet(r.Addr)
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path, logs are appended to this file as well as stdout")
}

func SetupDatabaseFlags(databaseConf *Database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.ConnectionString, "database.connection-string", "", "postgres connection string (falls back to DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupRedisFlags(redisConf *RedisConf, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&redisConf.Addr, "redis.addr", "", "redis address, leave empty to disable the transactions feed")
	cmd.PersistentFlags().StringVar(&redisConf.Password, "redis.password", "", "redis password")
	cmd.PersistentFlags().IntVar(&redisConf.DB, "redis.db", 0, "redis database number")
}

// Validate fails closed when no connection string is configured.
func (dbConf Database) Validate() error {
	if util.StrNotSet(strings.TrimSpace(dbConf.ConnectionString)) {
		return ErrMissingConnectionString
	}

	return nil
}

func validateRedisConf(redisConf RedisConf) error {
	if redisConf.DB < 0 {
		return errors.New("redis db must be a positive number or 0")
	}
	return nil
}

// Reads the Viper mapstructure tag to get the valid keys for a given config struct
func getValidConfigKeys(section any, baseName string) (keys []string) {
	v := reflect.ValueOf(section)
	typeOfS := v.Type()

	if baseName == "" {
		baseName = strings.ToLower(typeOfS.Name())
	}

	for i := 0; i < v.NumField(); i++ {
		field := typeOfS.Field(i)

		name := field.Tag.Get("mapstructure")
		if name == "" {
			name = field.Name
		}

		key := fmt.Sprintf("%v.%v", baseName, strings.ReplaceAll(strings.ToLower(name), " ", ""))
		keys = append(keys, key)
	}
	return
}

func addDatabaseConfigKeys(validKeys map[string]struct{}) {
	for _, key := range getValidConfigKeys(Database{}, "") {
		validKeys[key] = struct{}{}
	}
}

func addLogConfigKeys(validKeys map[string]struct{}) {
	for _, key := range getValidConfigKeys(log{}, "") {
		validKeys[key] = struct{}{}
	}
}

func addRedisConfigKeys(validKeys map[string]struct{}) {
	for _, key := range getValidConfigKeys(RedisConf{}, "redis") {
		validKeys[key] = struct{}{}
	}
}

func superfluousKeys(keys []string, validKeys map[string]struct{}) []string {
	ignoredKeys := make([]string, 0)
	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}
	return ignoredKeys
}
