package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseURLEnv is the environment variable holding the store connection string.
const DatabaseURLEnv = "DATABASE_URL"

// LoadDotEnv loads variables from the given .env files (default ./.env) into the process
// environment. A missing file is not an error; variables already set in the environment win.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// BindEnvironment maps well known environment variables onto viper keys.
func BindEnvironment(v *viper.Viper) error {
	return v.BindEnv("database.connection-string", DatabaseURLEnv)
}
