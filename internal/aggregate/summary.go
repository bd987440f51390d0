package aggregate

import (
	"context"
	"log/slog"
	"sync"

	"backlot/internal/catalog"
	"backlot/internal/logging"
	"backlot/internal/screenplay"
	"backlot/internal/services"
)

// Summarizer computes rolled-up counts from catalog data.
type Summarizer struct {
	catalog catalog.Service
	logger  *slog.Logger
}

// NewSummarizer constructs a summarizer.
func NewSummarizer(svc catalog.Service, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Summarizer{catalog: svc, logger: logger.With(slog.String(logging.FieldComponent, "summarizer"))}
}

// PartCounts fetches a part's content collections concurrently and counts
// them. A failed fetch logs and contributes zero for that source; the other
// sources still count.
func (s *Summarizer) PartCounts(ctx context.Context, partID string) (Counts, error) {
	if partID == "" {
		return Counts{}, services.Wrap(services.ErrValidation, "summarizer", "part counts", "part id required", nil)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts Counts
	)

	fetch := func(name string, fn func() (Counts, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partial, err := fn()
			if err != nil {
				s.logger.Warn("count source unavailable",
					slog.String(logging.FieldPartID, partID),
					slog.String("source", name),
					logging.Error(err),
				)
				return
			}
			mu.Lock()
			counts = counts.Add(partial)
			mu.Unlock()
		}()
	}

	fetch("beats", func() (Counts, error) {
		beats, err := s.catalog.GetBeats(ctx, partID)
		if err != nil {
			return Counts{}, err
		}
		return Counts{
			Beats:           len(beats),
			ScreenplayLines: screenplay.LineCount(beats),
		}, nil
	})
	fetch("shots", func() (Counts, error) {
		shots, err := s.catalog.GetShots(ctx, partID)
		if err != nil {
			return Counts{}, err
		}
		return Counts{Shots: len(shots)}, nil
	})
	fetch("images", func() (Counts, error) {
		images, err := s.catalog.GetPartImages(ctx, partID)
		if err != nil {
			return Counts{}, err
		}
		return Counts{Images: len(images)}, nil
	})
	fetch("clips", func() (Counts, error) {
		clips, err := s.catalog.GetPartClips(ctx, partID)
		if err != nil {
			return Counts{}, err
		}
		return Counts{Clips: len(clips)}, nil
	})

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// EpisodeSummary folds the precomputed part counts of one episode from the
// project overview. NotFound when the episode is not in the project.
func (s *Summarizer) EpisodeSummary(ctx context.Context, projectID, episodeID string) (Counts, error) {
	full, err := s.catalog.GetProjectFull(ctx, projectID)
	if err != nil {
		return Counts{}, err
	}
	for _, episode := range full.Episodes {
		if episode.ID == episodeID {
			return foldParts(episode.Parts), nil
		}
	}
	return Counts{}, services.Wrap(services.ErrNotFound, "summarizer", "episode summary",
		"episode not in project overview", nil)
}

// ProjectSummary folds every part count in the project overview.
func (s *Summarizer) ProjectSummary(ctx context.Context, projectID string) (Counts, error) {
	full, err := s.catalog.GetProjectFull(ctx, projectID)
	if err != nil {
		return Counts{}, err
	}
	var counts Counts
	for _, episode := range full.Episodes {
		counts = counts.Add(foldParts(episode.Parts))
	}
	return counts, nil
}

func foldParts(parts []catalog.PartSummary) Counts {
	var counts Counts
	for _, part := range parts {
		counts = counts.Add(Counts{
			Beats:       part.BeatCount,
			Shots:       part.ShotCount,
			Storyboards: part.StoryboardCount,
			Images:      part.ImageCount,
			Clips:       part.ClipCount,
		})
	}
	return counts
}
