package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"

	"gstsync/internal/config"
)

// NewDB connects to PostgreSQL and sizes the pool from cfg.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	ConfigurePool(db, cfg)
	return db, nil
}

// ConfigurePool applies the pool limits. Idle connections are capped at the
// open limit; zero values keep the database/sql defaults.
func ConfigurePool(db *sqlx.DB, cfg *config.DBConfig) {
	maxIdle := cfg.MaxIdle
	if cfg.MaxOpen > 0 && maxIdle > cfg.MaxOpen {
		maxIdle = cfg.MaxOpen
	}
	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}
