package main

import (
	"context"
	"time"

	mongoMigration "astro/internal/migrations/mongo"
	postgresMigration "astro/internal/migrations/postgres"
	"astro/pkg/config"
)

const (
	JobName          = "migrate"
	migrationTimeout = 120 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "backend", cfg.StorageBackend)

	var err error
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		cfg.SetPostgres()
		err = postgresMigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log)
	case config.StorageMongo:
		cfg.SetMongo()
		err = mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	default:
		cfg.Log.Info("Nothing to migrate for the in-memory backend")
		return
	}

	if err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
