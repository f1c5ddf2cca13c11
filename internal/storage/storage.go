package storage

import (
	"context"
	"fmt"

	reservationsrepo "astro/internal/reservations/repository"
	usersrepo "astro/internal/users/repository"
	"astro/pkg/config"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Storage bundles both halves of the storage port over one physical backend.
type Storage struct {
	Reservations reservationsrepo.ReservationRepository
	Users        usersrepo.UserRepository

	backend string
	ping    func(ctx context.Context) error
}

// NewMemory returns an isolated in-process store.
func NewMemory() *Storage {
	return &Storage{
		Reservations: reservationsrepo.NewMemoryReservationRepository(),
		Users:        usersrepo.NewMemoryUserRepository(),
		backend:      config.StorageMemory,
		ping:         func(context.Context) error { return nil },
	}
}

// Open connects the backend selected by cfg.StorageBackend and builds the
// repositories on top of it.
func Open(cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return NewMemory(), nil

	case config.StoragePostgres:
		cfg.SetPostgres()
		conn := cfg.Client.Postgres
		return &Storage{
			Reservations: reservationsrepo.NewPostgresReservationRepository(conn, cfg.ReadTimeout, cfg.WriteTimeout),
			Users:        usersrepo.NewPostgresUserRepository(conn, cfg.WriteTimeout),
			backend:      config.StoragePostgres,
			ping:         conn.PingContext,
		}, nil

	case config.StorageMongo:
		cfg.SetMongo()
		mc := cfg.Client.Mongo
		database := mc.Database(cfg.MongoDatabaseName)
		return &Storage{
			Reservations: reservationsrepo.NewMongoReservationRepository(database, cfg.ReadTimeout, cfg.WriteTimeout),
			Users:        usersrepo.NewMongoUserRepository(database, cfg.WriteTimeout),
			backend:      config.StorageMongo,
			ping: func(ctx context.Context) error {
				return mc.Ping(ctx, readpref.Primary())
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

func (s *Storage) Backend() string {
	return s.backend
}

// Ping checks that the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}
