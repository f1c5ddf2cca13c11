package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"astro/internal/reservations/service"
	apperrors "astro/pkg/errors"
	httputil "astro/pkg/http"
	"astro/pkg/logger"
	"astro/pkg/model"
)

const msgReservationCreated = "Reservation created successfully"

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload, err := decodeBody(r.Body)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.Create(r.Context(), payload)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, model.ReservationCreatedResponse{
		Message:     msgReservationCreated,
		Reservation: reservation,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/reservations", h.Create)
	router.GET("/api/reservations", h.GetAll)
}

// decodeBody reads exactly one JSON value of any shape. An empty body decodes
// to an empty object so every field is reported as missing.
func decodeBody(body io.Reader) (any, error) {
	if body == nil {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(body)
	var payload any
	if err := dec.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return map[string]any{}, nil
		case errors.As(err, &maxBytesErr):
			return nil, apperrors.TooLarge("Request body too large")
		default:
			return nil, apperrors.InvalidInput("Invalid request body")
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, apperrors.TooLarge("Request body too large")
		}
		return nil, apperrors.InvalidInput("Invalid request body")
	}
	return payload, nil
}
