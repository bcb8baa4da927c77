package database

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune the connection pool and SQL logging.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// NewGormConfig returns the gorm settings shared by the server and tests.
// Services open transactions explicitly, so gorm's implicit per-statement
// transactions are disabled.
func NewGormConfig(l *log.Logger, slowThreshold time.Duration) *gorm.Config {
	// Configure GORM logger
	sqlLogger := logger.New(
		l, // io writer
		logger.Config{
			SlowThreshold:             slowThreshold, // Slow SQL threshold
			LogLevel:                  gormLogLevel(l.GetLevel()),
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	return &gorm.Config{
		Logger:                 sqlLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// Connect opens the database connection and configures the pool.
func Connect(dsn string, l *log.Logger, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), NewGormConfig(l, opts.SlowThreshold))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	l.WithField("component", "database").Info("Database connection established.")
	return db, nil
}

func gormLogLevel(level log.Level) logger.LogLevel {
	switch {
	case level >= log.DebugLevel:
		return logger.Info
	case level >= log.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
