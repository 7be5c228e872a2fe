package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: 2024-13", ErrInvalidMonth), http.StatusBadRequest},
		{ErrInvalidPolicy, http.StatusBadRequest},
		{fmt.Errorf("allocate: %w", ErrInsufficientCandidates), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", ErrStorageUnavailable, errors.New("disk I/O error")), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", ErrScheduleCommitFailed, errors.New("constraint")), http.StatusInternalServerError},
		{fmt.Errorf("fetch page 2: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("unexpected status 503"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
