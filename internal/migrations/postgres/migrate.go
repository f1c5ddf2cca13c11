package postgres

import (
	"context"
	"fmt"

	"astro/pkg/logger"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	name      string
	statement string
}

var migrations = []migration{
	{
		name: "create_users",
		statement: `
			CREATE TABLE IF NOT EXISTS users (
				id       SERIAL PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL
			)`,
	},
	{
		name: "create_reservations",
		statement: `
			CREATE TABLE IF NOT EXISTS reservations (
				id               SERIAL PRIMARY KEY,
				name             TEXT NOT NULL,
				phone            TEXT NOT NULL,
				"date"           TEXT NOT NULL,
				"time"           TEXT NOT NULL,
				guests           TEXT NOT NULL,
				special_requests TEXT,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
}

// RunMigration creates the schema. Every statement is idempotent, so it is
// safe to run on each deploy.
func RunMigration(ctx context.Context, db *sqlx.DB, log *logger.Logger) error {
	log.Info("Running PostgreSQL migrations", "count", len(migrations))

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range migrations {
		if _, err := tx.ExecContext(ctx, m.statement); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
		log.Info("Applied migration", "name", m.name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	log.Info("All PostgreSQL migrations applied successfully")
	return nil
}
