package repository

import (
	"context"

	"astro/pkg/model"
)

// UserRepository is the user half of the storage port. No HTTP flow uses it.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, input *model.UserInput) (*model.User, error)
}
