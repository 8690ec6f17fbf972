package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go driver registered as "sqlite"
	_ "modernc.org/sqlite"

	"github.com/PierrickDossin/AymanProject/internal/models"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

const maxBackoff = 10 * time.Second

// Options selects the store and how hard to try reaching it.
type Options struct {
	Driver      string
	DSN         string
	MaxAttempts int
	LogLevel    logger.LogLevel
}

// Open connects to the configured store with retry logic and verifies the
// connection with a ping. Networked drivers are retried with exponential
// backoff; sqlite is opened once.
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	attempts := opts.MaxAttempts
	if attempts < 1 || opts.Driver == "sqlite" {
		attempts = 1
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	gormCfg := &gorm.Config{
		Logger: logger.New(utils.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
		}),
	}

	utils.Log.Info("Attempting to connect to database", "driver", opts.Driver)

	var db *gorm.DB
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					if opts.Driver == "sqlite" {
						// a single writer keeps sqlite from returning SQLITE_BUSY
						sqlDB.SetMaxOpenConns(1)
					}
					utils.Log.Info("Database connected", "attempt", i)
					return db, nil
				}
			} else {
				err = dbErr
			}
		}

		utils.Log.Warn("Database connection attempt failed", "attempt", i, "error", err)
		if i == attempts {
			break
		}

		// 1, 2, 4, 8 seconds, then capped
		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > maxBackoff {
			wait = maxBackoff
		}
		time.Sleep(wait)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// AutoMigrateTables creates or alters the tables for the given models.
func AutoMigrateTables(db *gorm.DB, models ...interface{}) error {
	utils.Log.Info("Running database migrations...")

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	utils.Log.Info("Database migrations completed")
	return nil
}

// Migrate runs AutoMigrateTables for every entity of the application.
func Migrate(db *gorm.DB) error {
	return AutoMigrateTables(db, models.All()...)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
