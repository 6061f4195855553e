package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, l *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		l.Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, l *zap.Logger, status int, code, message string) {
	respondJSON(w, l, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, l *zap.Logger, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, l, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return false
		}
		respondError(w, l, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

// handleValidationError converts domain validation errors to 400 responses.
func handleValidationError(w http.ResponseWriter, l *zap.Logger, err error) {
	var code string

	switch {
	case errors.Is(err, domain.ErrNegativePrice):
		code = "invalid_price"
	case errors.Is(err, domain.ErrNegativeStock):
		code = "invalid_stock"
	case errors.Is(err, domain.ErrNegativeQuantity), errors.Is(err, domain.ErrNonPositiveQuantity),
		errors.Is(err, domain.ErrStockOverflow):
		code = "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidEmail):
		code = "invalid_email"
	case errors.Is(err, domain.ErrEmptyAddress):
		code = "invalid_address"
	case errors.Is(err, domain.ErrUnknownStatus):
		code = "invalid_status"
	default:
		l.Error("unexpected validation error", zap.Error(err))
		respondError(w, l, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, l, http.StatusBadRequest, code, err.Error())
}
