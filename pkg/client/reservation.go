package client

import (
	"context"
	"fmt"
	"net/http"

	"astro/pkg/model"
)

const ReservationsPath = "/api/reservations"

// ReservationClient is a typed client for the booking endpoint.
type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ReservationClient) BaseURL() string {
	return c.httpClient.BaseURL
}

// Create posts an arbitrary payload and returns the raw response.
func (c *ReservationClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, ReservationsPath, body)
}

func (c *ReservationClient) CreateRaw(ctx context.Context, body []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, ReservationsPath, body)
}

func (c *ReservationClient) List(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, ReservationsPath)
}

// Book creates a reservation and decodes the stored record.
func (c *ReservationClient) Book(ctx context.Context, input model.ReservationInput) (*model.Reservation, error) {
	resp, err := c.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var created model.ReservationCreatedResponse
	if err := resp.DecodeJSON(&created); err != nil {
		return nil, fmt.Errorf("failed to decode reservation: %w", err)
	}
	return created.Reservation, nil
}

// Reservations fetches and decodes the full listing.
func (c *ReservationClient) Reservations(ctx context.Context) ([]*model.Reservation, error) {
	resp, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var reservations []*model.Reservation
	if err := resp.DecodeJSON(&reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}
