package http

import (
	"encoding/json"
	"net/http"

	apperrors "astro/pkg/errors"
)

// MessageResponse is the body of every non-list response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries Errors and Details only for validation failures.
type ErrorResponse struct {
	Message string         `json:"message"`
	Errors  string         `json:"errors,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err as JSON. Non-AppErrors become a generic 500 and
// only validation failures carry the errors summary and details.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	resp := ErrorResponse{Message: appErr.Message}
	if appErr.Code == apperrors.CodeValidation {
		if appErr.Err != nil {
			resp.Errors = appErr.Err.Error()
		}
		resp.Details = appErr.Details
	}

	status := appErr.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return WriteJSON(w, status, resp)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, MessageResponse{Message: message})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, data)
}
