package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/db/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDbConnect connects to the store identified by the configured connection string
func PostgresDbConnect(dbConf config.Database) (*gorm.DB, error) {
	if err := dbConf.Validate(); err != nil {
		config.Log.Error("Refusing to connect to the database", err)
		return nil, err
	}

	database, err := gorm.Open(postgres.Open(dbConf.ConnectionString), &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel(dbConf.LogLevel))})
	if err != nil {
		config.Log.Error("Error connecting to database", err)
		return nil, err
	}
	return database, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// TestConnection opens a single connection to the store and pings it.
func TestConnection(ctx context.Context, dbConf config.Database) error {
	if err := dbConf.Validate(); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, dbConf.ConnectionString)
	if err != nil {
		config.Log.Error("Error connecting to database", err)
		return err
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		config.Log.Error("Error pinging database", err)
		return err
	}
	return nil
}

// MigrateModels creates the tables that do not exist yet. Existing tables gain missing columns
// and indexes but are never dropped.
func MigrateModels(db *gorm.DB) error {
	if err := migrateUserModels(db); err != nil {
		return err
	}

	return migrateSmsModels(db)
}

func migrateUserModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
	)
}

// sms_messages before transactions for the foreign key
func migrateSmsModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SmsMessage{},
		&models.Transaction{},
	)
}
