package testsupport

import (
	"context"

	"backlot/internal/catalog"
	"backlot/internal/generation"
	"backlot/internal/services"
)

// StubCatalog is an in-memory catalog.Service for tests. Unset collections
// return empty results; entities missing from the maps return the configured
// Err (or a zero value when Err is nil).
type StubCatalog struct {
	Projects  map[string]*catalog.Project
	Episodes  map[string]*catalog.Episode
	Parts     map[string]*catalog.Part
	Full      map[string]*catalog.ProjectFull
	Beats     map[string][]catalog.Beat
	Shots     map[string][]catalog.Shot
	Images    map[string][]catalog.Image
	Clips     map[string][]catalog.Clip
	Err       error
	BeatsErr  error
	ShotsErr  error
	ImagesErr error
	ClipsErr  error
}

var _ catalog.Service = (*StubCatalog)(nil)

func (s *StubCatalog) GetProject(_ context.Context, id string) (*catalog.Project, error) {
	if p, ok := s.Projects[id]; ok {
		return p, nil
	}
	return nil, s.missing()
}

func (s *StubCatalog) GetEpisode(_ context.Context, id string) (*catalog.Episode, error) {
	if ep, ok := s.Episodes[id]; ok {
		return ep, nil
	}
	return nil, s.missing()
}

func (s *StubCatalog) GetPart(_ context.Context, id string) (*catalog.Part, error) {
	if p, ok := s.Parts[id]; ok {
		return p, nil
	}
	return nil, s.missing()
}

func (s *StubCatalog) GetProjectFull(_ context.Context, id string) (*catalog.ProjectFull, error) {
	if f, ok := s.Full[id]; ok {
		return f, nil
	}
	return nil, s.missing()
}

func (s *StubCatalog) GetBeats(_ context.Context, partID string) ([]catalog.Beat, error) {
	if s.BeatsErr != nil {
		return nil, s.BeatsErr
	}
	return s.Beats[partID], nil
}

func (s *StubCatalog) GetShots(_ context.Context, partID string) ([]catalog.Shot, error) {
	if s.ShotsErr != nil {
		return nil, s.ShotsErr
	}
	return s.Shots[partID], nil
}

func (s *StubCatalog) GetPartImages(_ context.Context, partID string) ([]catalog.Image, error) {
	if s.ImagesErr != nil {
		return nil, s.ImagesErr
	}
	return s.Images[partID], nil
}

func (s *StubCatalog) GetPartClips(_ context.Context, partID string) ([]catalog.Clip, error) {
	if s.ClipsErr != nil {
		return nil, s.ClipsErr
	}
	return s.Clips[partID], nil
}

func (s *StubCatalog) missing() error {
	if s.Err != nil {
		return s.Err
	}
	return services.Wrap(services.ErrNotFound, "catalog", "stub", "entity not present", nil)
}

// StubGenerator fakes the generation collaborator. Each call records the
// request; Results are returned in order, falling back to Result when the
// list is exhausted.
type StubGenerator struct {
	Requests []generation.Request
	Results  []*generation.Result
	Result   *generation.Result
	Err      error
}

func (s *StubGenerator) Generate(_ context.Context, req generation.Request) (*generation.Result, error) {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Results) > 0 {
		next := s.Results[0]
		s.Results = s.Results[1:]
		return next, nil
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &generation.Result{Content: "[]", Label: "generated"}, nil
}
