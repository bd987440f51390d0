package daemon_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"backlot/internal/api"
	"backlot/internal/artifact"
	"backlot/internal/config"
	"backlot/internal/daemon"
	"backlot/internal/logging"
	"backlot/internal/studio"
	"backlot/internal/testsupport"
)

func startDaemon(t *testing.T, mutate func(*config.Config)) (*daemon.Daemon, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	cfg.Paths.APIBind = "127.0.0.1:0"
	if mutate != nil {
		mutate(cfg)
	}

	store := testsupport.MustOpenStore(t, cfg)
	session := studio.NewSession(store, &testsupport.StubCatalog{}, &testsupport.StubGenerator{}, logging.NewNop())

	d, err := daemon.New(cfg, store, session, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start daemon: %v", err)
	}
	t.Cleanup(d.Stop)

	addr := d.Addr()
	if addr == "" {
		t.Fatal("daemon did not report a listen address")
	}
	return d, "http://" + addr
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestStatusEndpointReportsRunning(t *testing.T) {
	_, base := startDaemon(t, nil)

	resp, err := http.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	var status api.DaemonStatus
	decodeInto(t, resp, &status)
	if !status.Running {
		t.Fatal("daemon should report running")
	}
	if status.DBPath == "" || status.LockFilePath == "" {
		t.Fatalf("missing paths in status: %+v", status)
	}
}

func TestSecondStartIsRejected(t *testing.T) {
	d, _ := startDaemon(t, nil)

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("starting a running daemon should fail")
	}
}

func TestIndependentDaemonsCanCoexist(t *testing.T) {
	startDaemon(t, nil)
	startDaemon(t, nil)
}

func TestGenerateApproveRetryFlow(t *testing.T) {
	_, base := startDaemon(t, nil)

	// List creates the artifact slot on first use.
	resp, err := http.Get(base + "/api/versions?part=pt1&kind=beat_map")
	if err != nil {
		t.Fatalf("GET versions: %v", err)
	}
	var list api.VersionListResponse
	decodeInto(t, resp, &list)
	if list.Artifact.ID == "" {
		t.Fatalf("artifact not created: %+v", list)
	}
	if len(list.Versions) != 0 {
		t.Fatalf("expected empty history, got %d versions", len(list.Versions))
	}
	artifactID := list.Artifact.ID

	resp = postJSON(t, base+"/api/generate", map[string]string{"artifactId": artifactID, "feedback": "tighter pacing"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status = %d", resp.StatusCode)
	}
	var generated api.VersionResponse
	decodeInto(t, resp, &generated)
	if generated.Version.Number != 1 || !generated.Version.Active {
		t.Fatalf("unexpected generated version: %+v", generated.Version)
	}

	resp = postJSON(t, base+"/api/versions/approve", map[string]any{"artifactId": artifactID, "versionId": generated.Version.ID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	var approved api.VersionResponse
	decodeInto(t, resp, &approved)
	if approved.Version.Status != string(artifact.StatusApproved) {
		t.Fatalf("status = %q", approved.Version.Status)
	}

	resp = postJSON(t, base+"/api/retry", map[string]string{"artifactId": artifactID})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("retry on approved = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
	resp.Body.Close()
}

func TestVersionsRequiresValidKind(t *testing.T) {
	_, base := startDaemon(t, nil)

	resp, err := http.Get(base + "/api/versions?part=pt1&kind=bogus")
	if err != nil {
		t.Fatalf("GET versions: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestBreadcrumbEndpoint(t *testing.T) {
	_, base := startDaemon(t, nil)

	resp, err := http.Get(base + "/api/breadcrumb?project=p1")
	if err != nil {
		t.Fatalf("GET breadcrumb: %v", err)
	}
	var trail api.BreadcrumbResponse
	decodeInto(t, resp, &trail)
	if !trail.Empty {
		t.Fatalf("project-only trail should be empty: %+v", trail)
	}
}

func TestAPITokenIsEnforced(t *testing.T) {
	_, base := startDaemon(t, func(cfg *config.Config) {
		cfg.Paths.APIToken = "secret-token"
	})

	resp, err := http.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/status", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("authenticated GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated status = %d", resp.StatusCode)
	}
}

func TestMethodChecks(t *testing.T) {
	_, base := startDaemon(t, nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/status"},
		{http.MethodGet, "/api/generate"},
		{http.MethodGet, "/api/retry"},
		{http.MethodPost, "/api/summary"},
	}
	for _, tc := range cases {
		req, err := http.NewRequest(tc.method, base+tc.path, strings.NewReader("{}"))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s = %d, want %d", tc.method, tc.path, resp.StatusCode, http.StatusMethodNotAllowed)
		}
	}
}

func TestSummaryEndpoint(t *testing.T) {
	_, base := startDaemon(t, nil)

	resp, err := http.Get(base + "/api/summary?scope=part&part=pt1")
	if err != nil {
		t.Fatalf("GET summary: %v", err)
	}
	var summary api.Summary
	decodeInto(t, resp, &summary)
	if summary.Scope != "part" || summary.BeatsPerShot != "n/a" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
