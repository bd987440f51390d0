package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"backlot/internal/api"
	"backlot/internal/artifact"
	"backlot/internal/config"
	"backlot/internal/hierarchy"
	"backlot/internal/logging"
	"backlot/internal/services"
)

type apiServer struct {
	bind   string
	token  string
	logger *slog.Logger
	daemon *Daemon
	svc    *api.VersionService

	listener net.Listener
	server   *http.Server
}

type versionRequest struct {
	ArtifactID string `json:"artifactId"`
	VersionID  int64  `json:"versionId"`
}

type generateRequest struct {
	ArtifactID string `json:"artifactId"`
	Feedback   string `json:"feedback"`
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	mux := http.NewServeMux()
	srv := &apiServer{
		bind:   bind,
		token:  strings.TrimSpace(cfg.Paths.APIToken),
		logger: logger,
		daemon: d,
		svc:    api.NewVersionService(d.session),
	}

	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/versions", srv.handleVersions)
	mux.HandleFunc("/api/versions/activate", srv.handleActivate)
	mux.HandleFunc("/api/versions/restore", srv.handleRestore)
	mux.HandleFunc("/api/versions/approve", srv.handleApprove)
	mux.HandleFunc("/api/generate", srv.handleGenerate)
	mux.HandleFunc("/api/retry", srv.handleRetry)
	mux.HandleFunc("/api/summary", srv.handleSummary)
	mux.HandleFunc("/api/breadcrumb", srv.handleBreadcrumb)

	srv.server = &http.Server{
		Handler:           srv.authenticate(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) authenticate(next http.Handler) http.Handler {
	if s.token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header != "Bearer "+s.token {
			s.writeError(w, http.StatusUnauthorized, "invalid or missing API token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DBPath:       status.DBPath,
		LockFilePath: status.LockFilePath,
		Artifacts:    status.Stats.Artifacts,
		Versions:     status.Stats.Versions,
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleVersions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	partID := strings.TrimSpace(query.Get("part"))
	kind, ok := artifact.ParseKind(query.Get("kind"))
	if partID == "" || !ok {
		s.writeError(w, http.StatusBadRequest, "part and a valid kind are required")
		return
	}
	resp, err := s.svc.List(r.Context(), partID, kind)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleActivate(w http.ResponseWriter, r *http.Request) {
	s.handleVersionAction(w, r, s.svc.Activate)
}

func (s *apiServer) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.handleVersionAction(w, r, s.svc.Restore)
}

func (s *apiServer) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.handleVersionAction(w, r, s.svc.Approve)
}

func (s *apiServer) handleVersionAction(w http.ResponseWriter, r *http.Request, action func(context.Context, string, int64) (*api.VersionResponse, error)) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ArtifactID) == "" || req.VersionID <= 0 {
		s.writeError(w, http.StatusBadRequest, "artifactId and versionId are required")
		return
	}
	resp, err := action(r.Context(), req.ArtifactID, req.VersionID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ArtifactID) == "" {
		s.writeError(w, http.StatusBadRequest, "artifactId is required")
		return
	}
	resp, err := s.svc.Regenerate(r.Context(), req.ArtifactID, req.Feedback)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ArtifactID) == "" {
		s.writeError(w, http.StatusBadRequest, "artifactId is required")
		return
	}
	resp, err := s.svc.Retry(r.Context(), req.ArtifactID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	scope := strings.TrimSpace(query.Get("scope"))
	resp, err := s.svc.Summary(
		r.Context(),
		scope,
		strings.TrimSpace(query.Get("project")),
		strings.TrimSpace(query.Get("episode")),
		strings.TrimSpace(query.Get("part")),
	)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	loc := hierarchy.Location{
		ProjectID: strings.TrimSpace(query.Get("project")),
		EpisodeID: strings.TrimSpace(query.Get("episode")),
		PartID:    strings.TrimSpace(query.Get("part")),
		SceneID:   strings.TrimSpace(query.Get("scene")),
	}
	if loc.ProjectID == "" {
		s.writeError(w, http.StatusBadRequest, "project is required")
		return
	}
	resp, err := s.svc.Breadcrumb(r.Context(), loc)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, err error) {
	s.writeError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUpstream), errors.Is(err, services.ErrTransient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(slog.String(logging.FieldComponent, "api-server"))
	}
	return logging.NewNop()
}
