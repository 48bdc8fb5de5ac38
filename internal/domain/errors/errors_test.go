package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"unauthorized", ErrUnauthorized},
		{"invalid credentials", ErrInvalidCredentials},
		{"checkout not ready", ErrCheckoutNotReady},
		{"invalid menu item", ErrInvalidMenuItem},
		{"invalid status", ErrInvalidStatus},
		{"submission in flight", ErrSubmissionInFlight},
		{"remote unavailable", ErrRemoteUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}
