package errs

import (
	"context"
	"errors"
	"net/http"
)

// Error kinds surfaced by the catalog and scheduler.
// Check with errors.Is: errors.Is(err, errs.ErrInsufficientCandidates)
var (
	// ErrMalformedSource marks a scraped record that could not be parsed.
	// It is logged and skipped, never returned from a run.
	ErrMalformedSource = errors.New("malformed source record")

	ErrStorageUnavailable     = errors.New("catalog storage unavailable")
	ErrInsufficientCandidates = errors.New("no eligible problems to schedule")
	ErrScheduleCommitFailed   = errors.New("schedule commit failed")

	ErrInvalidMonth  = errors.New("invalid target month")
	ErrInvalidPolicy = errors.New("invalid scheduling policy")
)

// HTTPStatus maps an error kind to the response status handlers use.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidMonth), errors.Is(err, ErrInvalidPolicy):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientCandidates):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
