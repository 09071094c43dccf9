package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rentmoment/rental-api/pkg/listing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrProductNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", WrapError(ErrOrderNotFound, errors.New("record not found"))), http.StatusNotFound},
		{"conflict", ErrCategoryInUse, http.StatusConflict},
		{"too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"timeout", ErrRequestTimeout, http.StatusGatewayTimeout},
		{"storage", ErrStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFromListing(t *testing.T) {
	storage := &listing.StorageFailure{Op: "count", Err: errors.New("dial tcp: connection refused")}
	cancelled := &listing.CancellationFailure{Op: "find", Err: context.DeadlineExceeded}
	invalid := &listing.ValidationFailure{Field: "user", Reason: "is required"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"storage", storage, http.StatusInternalServerError, ErrStorage.Message},
		{"cancellation", cancelled, http.StatusGatewayTimeout, ErrRequestTimeout.Message},
		{"validation", invalid, http.StatusBadRequest, "user is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromListing(tt.err)
			if status := ToHTTPStatus(got); status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, status)
			}
			if msg := GetErrorMessage(got); msg != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, msg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("Expected the listing failure to stay in the chain")
			}
		})
	}

	if FromListing(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestDomainErrorIs(t *testing.T) {
	wrapped := WrapError(ErrUserNotFound, errors.New("record not found"))
	if !errors.Is(wrapped, ErrUserNotFound) {
		t.Error("Expected wrapped error to match its predefined value")
	}
	if errors.Is(wrapped, ErrOrderNotFound) {
		t.Error("Expected different codes not to match")
	}
}
