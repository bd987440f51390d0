package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"backlot/internal/config"
	"backlot/internal/generation"
	"backlot/internal/services"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...generation.Option) *generation.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.Generation{BaseURL: server.URL, APIKey: "test-key", Model: "storyboard-1"}
	opts = append([]generation.Option{generation.WithSleeper(func(time.Duration) {})}, opts...)
	return generation.New(cfg, opts...)
}

func TestGenerateSendsFeedback(t *testing.T) {
	var got generation.Request
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(generation.Result{Content: `{"beats":[]}`, Label: "darker tone"})
	}))

	result, err := client.Generate(context.Background(), generation.Request{
		ArtifactID: "art-1",
		Kind:       "beat_map",
		Feedback:   "make the second act darker",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Label != "darker tone" {
		t.Fatalf("unexpected label %q", result.Label)
	}
	if got.Feedback != "make the second act darker" {
		t.Fatalf("feedback not forwarded: %+v", got)
	}
	if got.Model != "storyboard-1" {
		t.Fatalf("model default not applied: %+v", got)
	}
}

func TestGenerateRetriesOn503(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(generation.Result{Content: "ok", Label: "retry"})
	}), generation.WithRetryMaxAttempts(5), generation.WithRetryBackoff(time.Millisecond, time.Millisecond))

	result, err := client.Generate(context.Background(), generation.Request{ArtifactID: "art-1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Content != "ok" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestGenerateDoesNotRetryOn422(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad feedback", http.StatusUnprocessableEntity)
	}), generation.WithRetryMaxAttempts(5))

	_, err := client.Generate(context.Background(), generation.Request{ArtifactID: "art-1"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}), generation.WithRetryMaxAttempts(2), generation.WithRetryBackoff(time.Millisecond, time.Millisecond))

	_, err := client.Generate(context.Background(), generation.Request{ArtifactID: "art-1"})
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGenerateRequiresArtifactID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	}))
	_, err := client.Generate(context.Background(), generation.Request{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
