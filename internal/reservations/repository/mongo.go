package repository

import (
	"context"
	"fmt"
	"time"

	reservationserrors "astro/internal/reservations/errors"
	"astro/pkg/db"
	mongodb "astro/pkg/db/mongo"
	"astro/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/guregu/null.v4"
)

const (
	CollectionName = "reservations"
	SequenceName   = "reservations"
)

type reservationDocument struct {
	ID              int64     `bson:"_id"`
	Name            string    `bson:"name"`
	Phone           string    `bson:"phone"`
	Date            string    `bson:"date"`
	Time            string    `bson:"time"`
	Guests          string    `bson:"guests"`
	SpecialRequests *string   `bson:"special_requests"`
	CreatedAt       time.Time `bson:"created_at"`
}

func toDocument(r *model.Reservation) reservationDocument {
	return reservationDocument{
		ID:              r.ID,
		Name:            r.Name,
		Phone:           r.Phone,
		Date:            r.Date,
		Time:            r.Time,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests.Ptr(),
		CreatedAt:       r.CreatedAt,
	}
}

func (d reservationDocument) toModel() *model.Reservation {
	return &model.Reservation{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		Date:            d.Date,
		Time:            d.Time,
		Guests:          d.Guests,
		SpecialRequests: null.StringFromPtr(d.SpecialRequests),
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

type mongoReservationRepository struct {
	collection   *mongo.Collection
	sequence     *mongodb.Sequence
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoReservationRepository(database *mongo.Database, readTimeout, writeTimeout time.Duration) ReservationRepository {
	return &mongoReservationRepository{
		collection:   database.Collection(CollectionName),
		sequence:     mongodb.NewSequence(database, SequenceName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// CreateReservation draws the id from the counters sequence before the
// insert. A failed insert leaves a gap in the ids but never a duplicate.
func (r *mongoReservationRepository) CreateReservation(ctx context.Context, input *model.ReservationInput) (*model.Reservation, error) {
	if input == nil {
		return nil, reservationserrors.ErrNilInput
	}

	ctx, cancel := db.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	id, err := r.sequence.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reservationserrors.ErrStorage, err)
	}

	reservation := model.NewReservation(id, input, time.Now().UTC().Truncate(time.Millisecond))
	if _, err := r.collection.InsertOne(ctx, toDocument(reservation)); err != nil {
		return nil, fmt.Errorf("%w: failed to insert reservation: %w", reservationserrors.ErrStorage, err)
	}

	return reservation, nil
}

func (r *mongoReservationRepository) GetReservations(ctx context.Context) ([]*model.Reservation, error) {
	ctx, cancel := db.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reservations: %w", reservationserrors.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode reservations: %w", reservationserrors.ErrStorage, err)
	}

	reservations := make([]*model.Reservation, 0, len(docs))
	for _, doc := range docs {
		reservations = append(reservations, doc.toModel())
	}
	return reservations, nil
}
