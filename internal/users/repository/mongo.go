package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	userserrors "astro/internal/users/errors"
	"astro/pkg/db"
	mongodb "astro/pkg/db/mongo"
	"astro/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "users"
	SequenceName   = "users"
)

type userDocument struct {
	ID       int64  `bson:"_id"`
	Username string `bson:"username"`
	Password string `bson:"password"`
}

type mongoUserRepository struct {
	collection *mongo.Collection
	sequence   *mongodb.Sequence
	timeout    time.Duration
}

func NewMongoUserRepository(database *mongo.Database, timeout time.Duration) UserRepository {
	return &mongoUserRepository{
		collection: database.Collection(CollectionName),
		sequence:   mongodb.NewSequence(database, SequenceName),
		timeout:    timeout,
	}
}

func (r *mongoUserRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch user: %w", userserrors.ErrStorage, err)
	}
	return &model.User{ID: doc.ID, Username: doc.Username, Password: doc.Password}, nil
}

// CreateUser depends on the unique username index from the migrations.
func (r *mongoUserRepository) CreateUser(ctx context.Context, input *model.UserInput) (*model.User, error) {
	if input == nil {
		return nil, userserrors.ErrNilInput
	}

	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.sequence.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", userserrors.ErrStorage, err)
	}

	doc := userDocument{ID: id, Username: input.Username, Password: input.Password}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, userserrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: failed to insert user: %w", userserrors.ErrStorage, err)
	}
	return &model.User{ID: doc.ID, Username: doc.Username, Password: doc.Password}, nil
}
