package api

import (
	"context"

	"backlot/internal/aggregate"
	"backlot/internal/artifact"
	"backlot/internal/hierarchy"
)

// SessionAPI abstracts the studio session operations the API layer exposes.
type SessionAPI interface {
	Artifact(ctx context.Context, partID string, kind artifact.Kind) (*artifact.Artifact, error)
	ListVersions(ctx context.Context, artifactID string) ([]*artifact.Version, error)
	ActiveVersion(ctx context.Context, artifactID string) (*artifact.Version, error)
	SetActive(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error)
	Restore(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error)
	Approve(ctx context.Context, artifactID string, versionID int64) (*artifact.Version, error)
	Retry(ctx context.Context, artifactID string) (*artifact.Version, error)
	Regenerate(ctx context.Context, artifactID, feedback string) (*artifact.Version, error)
	Breadcrumb(ctx context.Context, loc hierarchy.Location) (hierarchy.Trail, bool, error)
	PartSummary(ctx context.Context, partID string) (aggregate.Counts, error)
	EpisodeSummary(ctx context.Context, projectID, episodeID string) (aggregate.Counts, error)
	ProjectSummary(ctx context.Context, projectID string) (aggregate.Counts, error)
}

// VersionService exposes version operations returning API DTOs.
type VersionService struct {
	session SessionAPI
}

// NewVersionService constructs a VersionService around a session.
func NewVersionService(session SessionAPI) *VersionService {
	if session == nil {
		return nil
	}
	return &VersionService{session: session}
}

// List returns an artifact's full version history for a part and kind.
func (s *VersionService) List(ctx context.Context, partID string, kind artifact.Kind) (*VersionListResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	art, err := s.session.Artifact(ctx, partID, kind)
	if err != nil {
		return nil, err
	}
	versions, err := s.session.ListVersions(ctx, art.ID)
	if err != nil {
		return nil, err
	}
	return &VersionListResponse{
		Artifact: FromArtifact(art),
		Versions: FromVersions(versions),
	}, nil
}

// Activate moves the active pointer to a version.
func (s *VersionService) Activate(ctx context.Context, artifactID string, versionID int64) (*VersionResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	version, err := s.session.SetActive(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	return &VersionResponse{Version: FromVersion(version)}, nil
}

// Restore reactivates an older version with an audit label.
func (s *VersionService) Restore(ctx context.Context, artifactID string, versionID int64) (*VersionResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	version, err := s.session.Restore(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	return &VersionResponse{Version: FromVersion(version)}, nil
}

// Approve locks a version as canon.
func (s *VersionService) Approve(ctx context.Context, artifactID string, versionID int64) (*VersionResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	version, err := s.session.Approve(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	return &VersionResponse{Version: FromVersion(version)}, nil
}

// Retry regenerates the active version without feedback.
func (s *VersionService) Retry(ctx context.Context, artifactID string) (*VersionResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	version, err := s.session.Retry(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	return &VersionResponse{Version: FromVersion(version)}, nil
}

// Regenerate issues a feedback-bearing regeneration.
func (s *VersionService) Regenerate(ctx context.Context, artifactID, feedback string) (*VersionResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	version, err := s.session.Regenerate(ctx, artifactID, feedback)
	if err != nil {
		return nil, err
	}
	return &VersionResponse{Version: FromVersion(version)}, nil
}

// Breadcrumb resolves a hierarchy location to its trail.
func (s *VersionService) Breadcrumb(ctx context.Context, loc hierarchy.Location) (*BreadcrumbResponse, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	trail, current, err := s.session.Breadcrumb(ctx, loc)
	if err != nil {
		return nil, err
	}
	if !current {
		return &BreadcrumbResponse{Empty: true}, nil
	}
	resp := FromTrail(trail)
	return &resp, nil
}

// Summary rolls up counts for a part, episode, or project scope.
func (s *VersionService) Summary(ctx context.Context, scope, projectID, episodeID, partID string) (*Summary, error) {
	if s == nil || s.session == nil {
		return nil, nil
	}
	var (
		counts aggregate.Counts
		id     string
		err    error
	)
	switch scope {
	case "part":
		id = partID
		counts, err = s.session.PartSummary(ctx, partID)
	case "episode":
		id = episodeID
		counts, err = s.session.EpisodeSummary(ctx, projectID, episodeID)
	default:
		scope = "project"
		id = projectID
		counts, err = s.session.ProjectSummary(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}
	summary := FromCounts(scope, id, counts)
	return &summary, nil
}
