package handlers

import (
	"errors"
	"net/http"

	"railbook/internal/domain"
	"railbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. SeatUnavailable
// carries the conflicting seat so clients can retry with another one.
func RespondDomainError(c *gin.Context, err error) {
	var seatErr domain.SeatUnavailableError
	switch {
	case errors.As(err, &seatErr):
		respondError(c, http.StatusConflict, "seat_unavailable", err.Error(), gin.H{
			"trip_id":     seatErr.TripID,
			"wagon_id":    seatErr.WagonID,
			"seat_number": seatErr.SeatNumber,
		})
	case domain.IsInvalidSeatSelection(err):
		respondError(c, http.StatusBadRequest, "invalid_seat_selection", err.Error(), nil)
	case domain.IsTripClosed(err):
		respondError(c, http.StatusConflict, "trip_closed", err.Error(), nil)
	case domain.IsTokenError(err):
		respondError(c, http.StatusConflict, "reservation_expired", "reservation expired, please try again", nil)
	case domain.IsPersistence(err):
		respondError(c, http.StatusServiceUnavailable, "persistence_failure", "temporary storage failure, please retry", nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsInternal(err):
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
