package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	reservationserrors "astro/internal/reservations/errors"
	"astro/internal/reservations/repository"
	"astro/internal/reservations/validator"
	apperrors "astro/pkg/errors"
	"astro/pkg/logger"
	"astro/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct {
	err error
}

func (f *failingRepository) CreateReservation(context.Context, *model.ReservationInput) (*model.Reservation, error) {
	return nil, f.err
}

func (f *failingRepository) GetReservations(context.Context) ([]*model.Reservation, error) {
	return nil, f.err
}

type nilListRepository struct {
	repository.ReservationRepository
}

func (nilListRepository) GetReservations(context.Context) ([]*model.Reservation, error) {
	return nil, nil
}

type recordingPublisher struct {
	published []*model.Reservation
	err       error
}

func (p *recordingPublisher) ReservationCreated(_ context.Context, r *model.Reservation) error {
	p.published = append(p.published, r)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newService(repo repository.ReservationRepository, pub *recordingPublisher) ReservationService {
	log := logger.Discard()
	if pub == nil {
		return NewReservationService(repo, validator.NewReservationValidator(log), nil, log)
	}
	return NewReservationService(repo, validator.NewReservationValidator(log), pub, log)
}

func payload(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

const validBody = `{"name":"Aki","phone":"9607771234","date":"2024-05-01","time":"19:00","guests":"2","specialRequests":"Window"}`

func TestCreate_Success(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(repository.NewMemoryReservationRepository(), pub)

	r, err := svc.Create(context.Background(), payload(t, validBody))
	require.NoError(t, err)

	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, "Aki", r.Name)
	assert.Equal(t, "Window", r.SpecialRequests.String)
	assert.False(t, r.CreatedAt.IsZero())
	require.Len(t, pub.published, 1)
	assert.Equal(t, r.ID, pub.published[0].ID)
}

func TestCreate_ValidationError(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(repository.NewMemoryReservationRepository(), pub)

	_, err := svc.Create(context.Background(), payload(t, `{"name":"A","phone":"9607771234","date":"2024-05-01","time":"19:00","guests":"2"}`))
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(t, "Validation failed", appErr.Message)
	assert.Equal(t, `Validation error: Name must be at least 2 characters at "name"`, appErr.Err.Error())
	assert.Equal(t, "Name must be at least 2 characters", appErr.Details["name"])
	assert.Empty(t, pub.published, "nothing should be announced for rejected input")

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "rejected input must not be stored")
}

func TestCreate_StorageFailure(t *testing.T) {
	cause := errors.Join(reservationserrors.ErrStorage, errors.New("connection reset"))
	svc := newService(&failingRepository{err: cause}, nil)

	_, err := svc.Create(context.Background(), payload(t, validBody))
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(t, "Server error occurred while creating reservation", appErr.Message)
	assert.ErrorIs(t, err, reservationserrors.ErrStorage)
}

func TestCreate_PublishFailureStillSucceeds(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newService(repository.NewMemoryReservationRepository(), pub)

	r, err := svc.Create(context.Background(), payload(t, validBody))
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.ID)

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_OffSlotTimeAccepted(t *testing.T) {
	svc := newService(repository.NewMemoryReservationRepository(), nil)

	r, err := svc.Create(context.Background(), payload(t, `{"name":"Aki","phone":"9607771234","date":"someday","time":"03:15","guests":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, "03:15", r.Time)
	assert.Equal(t, "12", r.Guests)
}

func TestGetAll(t *testing.T) {
	svc := newService(repository.NewMemoryReservationRepository(), nil)

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, name := range []string{"Aki", "Mira", "Zayan"} {
		body := `{"name":"` + name + `","phone":"9607771234","date":"2024-05-01","time":"19:00","guests":"2"}`
		_, err := svc.Create(context.Background(), payload(t, body))
		require.NoError(t, err)
	}

	list, err = svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, r := range list {
		assert.Equal(t, int64(i+1), r.ID)
	}
	assert.Equal(t, "Zayan", list[2].Name)
}

func TestGetAll_NeverNil(t *testing.T) {
	svc := newService(nilListRepository{}, nil)

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestGetAll_StorageFailure(t *testing.T) {
	svc := newService(&failingRepository{err: reservationserrors.ErrStorage}, nil)

	_, err := svc.GetAll(context.Background())
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(t, "Server error occurred while fetching reservations", appErr.Message)
}
