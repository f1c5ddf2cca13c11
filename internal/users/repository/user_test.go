package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	mongomigrations "astro/internal/migrations/mongo"
	pgmigrations "astro/internal/migrations/postgres"
	userserrors "astro/internal/users/errors"
	"astro/pkg/client"
	"astro/pkg/logger"
	"astro/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func testUserRepository(t *testing.T, newRepo func(t *testing.T) UserRepository) {
	t.Run("create then fetch by id and username", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.CreateUser(ctx, &model.UserInput{Username: "host", Password: "secret"})
		require.NoError(t, err)
		assert.Greater(t, created.ID, int64(0))
		assert.Equal(t, "secret", created.Password)

		byID, err := repo.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, byID)

		byName, err := repo.GetUserByUsername(ctx, "host")
		require.NoError(t, err)
		assert.Equal(t, created, byName)
	})

	t.Run("ids increase", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.CreateUser(ctx, &model.UserInput{Username: "a", Password: "x"})
		require.NoError(t, err)
		b, err := repo.CreateUser(ctx, &model.UserInput{Username: "b", Password: "x"})
		require.NoError(t, err)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.GetUser(ctx, 404)
		assert.ErrorIs(t, err, userserrors.ErrNotFound)

		_, err = repo.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, userserrors.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.CreateUser(ctx, &model.UserInput{Username: "host", Password: "one"})
		require.NoError(t, err)
		_, err = repo.CreateUser(ctx, &model.UserInput{Username: "host", Password: "two"})
		assert.ErrorIs(t, err, userserrors.ErrUsernameTaken)
	})

	t.Run("nil input", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.CreateUser(context.Background(), nil)
		assert.ErrorIs(t, err, userserrors.ErrNilInput)
	})
}

func TestMemoryUserRepository(t *testing.T) {
	testUserRepository(t, func(t *testing.T) UserRepository {
		return NewMemoryUserRepository()
	})
}

func TestPostgresUserRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL tests")
	}

	conn, err := client.ConnectPostgres(client.PostgresOptions{
		URL:             url,
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, pgmigrations.RunMigration(context.Background(), conn, logger.Discard()))

	testUserRepository(t, func(t *testing.T) UserRepository {
		_, err := conn.Exec(`TRUNCATE users RESTART IDENTITY`)
		require.NoError(t, err)
		return NewPostgresUserRepository(conn, 5*time.Second)
	})
}

func TestMongoUserRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping MongoDB tests")
	}

	ctx := context.Background()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mc.Disconnect(context.Background()) })

	n := 0
	testUserRepository(t, func(t *testing.T) UserRepository {
		n++
		database := mc.Database(fmt.Sprintf("astro_users_test_%d_%d", time.Now().UnixNano(), n))
		t.Cleanup(func() { _ = database.Drop(context.Background()) })
		require.NoError(t, mongomigrations.RunMigration(ctx, database, logger.Discard()))
		return NewMongoUserRepository(database, 5*time.Second)
	})
}
