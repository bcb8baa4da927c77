package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending schema migration on the connection held by db.
func Migrate(db *gorm.DB, l *log.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	entry := l.WithField("component", "database")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			entry.Info("Database schema is up to date.")
			return nil
		}
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	version, _, _ := m.Version()
	entry.WithField("version", version).Info("Database migrated successfully.")
	return nil
}
