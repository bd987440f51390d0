package studio

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"backlot/internal/aggregate"
	"backlot/internal/artifact"
	"backlot/internal/catalog"
	"backlot/internal/generation"
	"backlot/internal/hierarchy"
	"backlot/internal/logging"
	"backlot/internal/services"
)

// Generator produces artifact version documents. Satisfied by
// *generation.Client.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Session is one client's view of the artifact model. It serializes writes
// per artifact, overlays the transient iterating state while a feedback
// regeneration is in flight, and guarantees that reads issued after a
// mutation resolves observe that mutation.
type Session struct {
	id         string
	store      *artifact.Store
	catalog    catalog.Service
	generator  Generator
	resolver   *hierarchy.Resolver
	summarizer *aggregate.Summarizer
	tracker    hierarchy.Tracker
	logger     *slog.Logger

	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	inflight map[string]struct{}
}

// NewSession constructs a session over the store and collaborators.
func NewSession(store *artifact.Store, svc catalog.Service, gen Generator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(slog.String(logging.FieldComponent, "session"))
	return &Session{
		id:         uuid.NewString(),
		store:      store,
		catalog:    svc,
		generator:  gen,
		resolver:   hierarchy.NewResolver(svc, logger),
		summarizer: aggregate.NewSummarizer(svc, logger),
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
		inflight:   make(map[string]struct{}),
	}
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Close discards session-local state. The store is owned by the caller.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = make(map[string]*sync.Mutex)
	s.inflight = make(map[string]struct{})
	return nil
}

func (s *Session) lockFor(artifactID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[artifactID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[artifactID] = lock
	}
	return lock
}

func (s *Session) markInflight(artifactID string) {
	s.mu.Lock()
	s.inflight[artifactID] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) clearInflight(artifactID string) {
	s.mu.Lock()
	delete(s.inflight, artifactID)
	s.mu.Unlock()
}

func (s *Session) isInflight(artifactID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[artifactID]
	return ok
}

// Artifact returns the artifact slot for a part and kind, creating it on
// first use.
func (s *Session) Artifact(ctx context.Context, partID string, kind artifact.Kind) (*artifact.Artifact, error) {
	return s.store.EnsureArtifact(ctx, partID, kind)
}

// ListVersions returns the artifact's history with the transient iterating
// overlay applied: while a feedback regeneration is in flight the active
// draft presents as iterating.
func (s *Session) ListVersions(ctx context.Context, artifactID string) ([]*artifact.Version, error) {
	versions, err := s.store.ListVersions(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if s.isInflight(artifactID) {
		for _, version := range versions {
			if version.Active && version.Status == artifact.StatusDraft {
				version.Status = artifact.StatusIterating
			}
		}
	}
	return versions, nil
}

// ActiveVersion returns the active version with the iterating overlay applied.
func (s *Session) ActiveVersion(ctx context.Context, artifactID string) (*artifact.Version, error) {
	version, err := s.store.ActiveVersion(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if s.isInflight(artifactID) && version.Status == artifact.StatusDraft {
		version.Status = artifact.StatusIterating
	}
	return version, nil
}

// SetActive moves the active pointer to the target version.
func (s *Session) SetActive(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()
	return s.store.SetActive(ctx, artifactID, versionID)
}

// Restore reactivates an older version, labelled for audit display.
func (s *Session) Restore(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()
	return s.store.Restore(ctx, artifactID, versionID)
}

// Approve locks a version as canon. Idempotent on already-approved versions.
func (s *Session) Approve(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()

	version, err := s.store.Approve(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	s.clearInflight(artifactID)
	return version, nil
}

// Retry regenerates the active version without feedback. The version's
// status does not change while the request runs; an approved active version
// rejects the call with Conflict.
func (s *Session) Retry(ctx context.Context, artifactID string) (*artifact.Version, error) {
	return s.generate(ctx, artifactID, "")
}

// Regenerate issues a feedback-bearing regeneration. The active draft
// presents as iterating until the request completes; success appends a new
// draft version carrying the feedback, failure leaves everything untouched.
func (s *Session) Regenerate(ctx context.Context, artifactID, feedback string) (*artifact.Version, error) {
	return s.generate(ctx, artifactID, feedback)
}

func (s *Session) generate(ctx context.Context, artifactID, feedback string) (*artifact.Version, error) {
	lock := s.lockFor(artifactID)
	lock.Lock()
	defer lock.Unlock()

	ctx = services.WithArtifactID(ctx, artifactID)
	art, err := s.store.GetArtifact(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	active, err := s.store.ActiveVersion(ctx, artifactID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	if active.Approved() {
		return nil, services.Wrap(services.ErrConflict, "session", "generate",
			"active version is approved and immutable", nil)
	}

	withFeedback := feedback != ""
	if withFeedback {
		s.markInflight(artifactID)
		defer s.clearInflight(artifactID)
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("generation requested",
		slog.String(logging.FieldKind, string(art.Kind)),
		slog.Bool("with_feedback", withFeedback),
	)

	result, err := s.generator.Generate(ctx, generation.Request{
		ArtifactID: artifactID,
		Kind:       string(art.Kind),
		Feedback:   feedback,
	})
	if err != nil {
		logger.Warn("generation failed", logging.Error(err))
		return nil, err
	}
	if err := validateContent(art.Kind, result.Content); err != nil {
		logger.Warn("generated content rejected", logging.Error(err))
		return nil, err
	}

	version, err := s.store.AppendVersion(ctx, artifactID, result.Content, result.Label, feedback)
	if err != nil {
		return nil, err
	}
	logger.Info("version appended", slog.Int(logging.FieldVersion, version.Number))
	return version, nil
}

// Breadcrumb resolves a hierarchy location to a trail. The boolean reports
// whether the result is still current; results superseded by a later
// Breadcrumb call on the same session must be discarded by the caller.
func (s *Session) Breadcrumb(ctx context.Context, loc hierarchy.Location) (hierarchy.Trail, bool, error) {
	token := s.tracker.Begin()
	trail, err := s.resolver.Resolve(ctx, loc)
	if err != nil {
		return hierarchy.Trail{}, false, err
	}
	return trail, s.tracker.Commit(token), nil
}

// PartSummary rolls up the content counts of one part.
func (s *Session) PartSummary(ctx context.Context, partID string) (aggregate.Counts, error) {
	return s.summarizer.PartCounts(ctx, partID)
}

// EpisodeSummary rolls up the content counts of one episode.
func (s *Session) EpisodeSummary(ctx context.Context, projectID, episodeID string) (aggregate.Counts, error) {
	return s.summarizer.EpisodeSummary(ctx, projectID, episodeID)
}

// ProjectSummary rolls up the content counts of a whole project.
func (s *Session) ProjectSummary(ctx context.Context, projectID string) (aggregate.Counts, error) {
	return s.summarizer.ProjectSummary(ctx, projectID)
}
