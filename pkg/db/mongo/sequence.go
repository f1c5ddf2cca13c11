package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CountersCollection = "counters"

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

// Sequence hands out strictly increasing int64 ids backed by a single
// counters document. Each Next is one atomic $inc on the server, so
// concurrent callers in any number of processes never share a value.
type Sequence struct {
	collection *mongo.Collection
	name       string
}

func NewSequence(db *mongo.Database, name string) *Sequence {
	return &Sequence{
		collection: db.Collection(CountersCollection),
		name:       name,
	}
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", s.name, err)
	}
	return c.Value, nil
}
