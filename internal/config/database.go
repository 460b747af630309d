package config

import (
	"log"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection, retrying with backoff so
// the API survives the database coming up after it in compose setups.
func NewDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
				Logger: logger.Default.LogMode(logLevel),
			})
			return err
		},
		retry.Attempts(10),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("Database not ready (attempt %d): %v", n+1, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}
