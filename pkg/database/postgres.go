package database

import (
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxConnLife  time.Duration
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Connect opens a pooled connection and optionally runs pending migrations.
func Connect(logger ectologger.Logger, cfg PostgresConfig, migrations *MigrationConfig) (DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	instance := NewDatabaseInstance(db, logger)
	instance.SetMaxOpenConns(cfg.MaxOpenConns)
	instance.SetMaxIdleConns(cfg.MaxIdleConns)
	instance.SetConnMaxLifetime(cfg.MaxConnLife)

	if migrations != nil {
		driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
		if err != nil {
			logger.WithError(err).Error("Failed to create migration driver")
			return nil, err
		}

		migrationService := NewMigrationService(logger, migrations)
		if err := migrationService.Migrate(cfg.Name, driver); err != nil {
			return nil, err
		}
	}

	return instance, nil
}
