package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backlot/internal/catalog"
	"backlot/internal/config"
	"backlot/internal/services"
)

func newTestClient(t *testing.T, handler http.Handler) *catalog.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return catalog.New(config.Catalog{BaseURL: server.URL, APIKey: "test-key"})
}

func TestGetPartDecodesResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/parts/part-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"part-1","episodeId":"ep-1","projectId":"proj-1","partNumber":3,"title":"The Hangar"}`))
	}))

	part, err := client.GetPart(context.Background(), "part-1")
	if err != nil {
		t.Fatalf("GetPart: %v", err)
	}
	if part.PartNumber != 3 || part.Title != "The Hangar" {
		t.Fatalf("unexpected part: %+v", part)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetProject(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetBeatsServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.GetBeats(context.Background(), "part-1")
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGetProjectFullCounts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "proj-1", "name": "Signal Lost",
			"episodes": [{
				"id": "ep-1", "projectId": "proj-1", "episodeNumber": 1,
				"parts": [{
					"id": "part-1", "episodeId": "ep-1", "projectId": "proj-1", "partNumber": 1,
					"beatCount": 4, "shotCount": 12, "storyboardCount": 12, "imageCount": 3, "clipCount": 1
				}]
			}]
		}`))
	}))

	full, err := client.GetProjectFull(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("GetProjectFull: %v", err)
	}
	if len(full.Episodes) != 1 || len(full.Episodes[0].Parts) != 1 {
		t.Fatalf("unexpected shape: %+v", full)
	}
	part := full.Episodes[0].Parts[0]
	if part.BeatCount != 4 || part.ShotCount != 12 || part.ClipCount != 1 {
		t.Fatalf("unexpected counts: %+v", part)
	}
}

func TestMissingBaseURLIsConfigurationError(t *testing.T) {
	client := catalog.New(config.Catalog{})
	_, err := client.GetPart(context.Background(), "part-1")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
