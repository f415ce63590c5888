package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// SeatUnavailableError reports the first conflicting seat of a failed
// reservation. Retryable by the client with a different seat.
type SeatUnavailableError struct {
	TripID     int64
	WagonID    int64
	SeatNumber int
}

func (e SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat %d is not available in wagon %d for trip %d", e.SeatNumber, e.WagonID, e.TripID)
}

// InvalidSeatSelectionError marks a malformed seat request (empty set,
// duplicate or out-of-range seat numbers). Not retryable as-is.
type InvalidSeatSelectionError struct {
	SeatNumber int
	Msg        string
}

func (e InvalidSeatSelectionError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid seat selection: seat %d", e.SeatNumber)
}

// TripClosedError means the trip already departed; terminal for bookings.
type TripClosedError struct {
	TripID int64
}

func (e TripClosedError) Error() string {
	return fmt.Sprintf("trip %d is closed for booking", e.TripID)
}

// TokenError covers expired or unknown reservation tokens. It triggers an
// automatic rollback and surfaces to the client as a retryable condition.
type TokenError struct {
	Token   string
	Expired bool
}

func (e TokenError) Error() string {
	if e.Expired {
		return "reservation token expired"
	}
	return "reservation token invalid"
}

// PersistenceError wraps storage failures after seats were reserved; the
// orchestrator releases the holds before returning it.
type PersistenceError struct {
	Err error
}

func (e PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence failure: %v", e.Err)
	}
	return "persistence failure"
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsInvalidSeatSelection(err error) bool {
	var target InvalidSeatSelectionError
	return errors.As(err, &target)
}

func IsTripClosed(err error) bool {
	var target TripClosedError
	return errors.As(err, &target)
}

func IsTokenError(err error) bool {
	var target TokenError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
