package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	userserrors "astro/internal/users/errors"
	"astro/pkg/db"
	"astro/pkg/db/postgres"
	"astro/pkg/model"

	"github.com/jmoiron/sqlx"
)

const (
	selectUserByIDQuery       = `SELECT id, username, password FROM users WHERE id = $1`
	selectUserByUsernameQuery = `SELECT id, username, password FROM users WHERE username = $1`
	insertUserQuery           = `INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, username, password`
)

type postgresUserRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresUserRepository(conn *sqlx.DB, timeout time.Duration) UserRepository {
	return &postgresUserRepository{
		db:      conn,
		timeout: timeout,
	}
}

func (r *postgresUserRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, selectUserByIDQuery, id)
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, selectUserByUsernameQuery, username)
}

func (r *postgresUserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch user: %w", userserrors.ErrStorage, err)
	}
	return &user, nil
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, input *model.UserInput) (*model.User, error) {
	if input == nil {
		return nil, userserrors.ErrNilInput
	}

	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user model.User
	if err := r.db.GetContext(ctx, &user, insertUserQuery, input.Username, input.Password); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, userserrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: failed to insert user: %w", userserrors.ErrStorage, err)
	}
	return &user, nil
}
