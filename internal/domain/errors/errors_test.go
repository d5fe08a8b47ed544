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
		{"access denied", ErrAccessDenied},
		{"invalid input", ErrInvalidInput},
		{"conflict", ErrConflict},
		{"version conflict", ErrVersionConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestGatewayErrorWrapsCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Gateway("get order", cause)

	var gw *GatewayError
	if !stdErrors.As(err, &gw) {
		t.Fatalf("expected GatewayError, got %T", err)
	}
	if gw.Op != "get order" {
		t.Fatalf("unexpected op %q", gw.Op)
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
}
