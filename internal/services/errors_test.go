package services_test

import (
	"errors"
	"testing"

	"backlot/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUpstream, "generation", "regenerate", "request failed", base)
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "store", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not_found", services.Wrap(services.ErrNotFound, "store", "get", "", nil), false},
		{"conflict", services.Wrap(services.ErrConflict, "session", "retry", "", nil), false},
		{"validation", services.Wrap(services.ErrValidation, "decode", "", "", nil), false},
		{"upstream", services.Wrap(services.ErrUpstream, "catalog", "", "", nil), true},
		{"plain", errors.New("unknown"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.Retryable(tc.err); got != tc.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
