package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"backlot/internal/catalog"
	"backlot/internal/logging"
)

// Crumb is one level of a resolved breadcrumb trail.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Trail is the ordered breadcrumb from project down to the deepest supplied
// level: Project, [Episodes, Episode], [Part].
type Trail struct {
	Crumbs []Crumb `json:"crumbs"`
}

// Empty reports whether the trail should render nothing. A trail that only
// reaches the project level carries no navigation value.
func (t Trail) Empty() bool {
	return len(t.Crumbs) <= 1
}

// Resolver builds breadcrumb trails from catalog lookups.
type Resolver struct {
	catalog catalog.Service
	logger  *slog.Logger
}

// NewResolver constructs a breadcrumb resolver.
func NewResolver(svc catalog.Service, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{catalog: svc, logger: logger.With(slog.String(logging.FieldComponent, "resolver"))}
}

// PendingTrail returns the trail shape for a location before any labels have
// resolved, with deterministic placeholders per level.
func PendingTrail(loc Location) Trail {
	canonical, _ := loc.Canonical()
	if canonical.ProjectID == "" {
		return Trail{}
	}
	trail := Trail{Crumbs: []Crumb{{Label: "Loading...", Href: projectHref(canonical.ProjectID)}}}
	if canonical.EpisodeID != "" {
		trail.Crumbs = append(trail.Crumbs,
			Crumb{Label: "Episodes", Href: episodesHref(canonical.ProjectID)},
			Crumb{Label: "Episode ...", Href: episodeHref(canonical.ProjectID, canonical.EpisodeID)},
		)
		if canonical.PartID != "" {
			trail.Crumbs = append(trail.Crumbs, Crumb{
				Label: "Part ...",
				Href:  partHref(canonical.ProjectID, canonical.EpisodeID, canonical.PartID),
			})
		}
	}
	return trail
}

// Resolve fetches labels for every level of the location concurrently and
// assembles the trail. A level whose fetch fails gets a generic fallback
// label; a legacy scene location falls back to "Part <sceneId>".
func (r *Resolver) Resolve(ctx context.Context, loc Location) (Trail, error) {
	canonical, legacy := loc.Canonical()
	if canonical.ProjectID == "" {
		return Trail{}, nil
	}

	var (
		wg           sync.WaitGroup
		projectLabel = "Project"
		episodeLabel = "Episode"
		partLabel    = "Part"
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		project, err := r.catalog.GetProject(ctx, canonical.ProjectID)
		if err != nil {
			r.logger.Warn("project label fetch failed", slog.String("project_id", canonical.ProjectID), logging.Error(err))
			return
		}
		if project.Name != "" {
			projectLabel = project.Name
		}
	}()

	if canonical.EpisodeID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			episode, err := r.catalog.GetEpisode(ctx, canonical.EpisodeID)
			if err != nil {
				r.logger.Warn("episode label fetch failed", slog.String("episode_id", canonical.EpisodeID), logging.Error(err))
				return
			}
			episodeLabel = fmt.Sprintf("Episode %d", episode.EpisodeNumber)
		}()
	}

	if canonical.PartID != "" {
		if legacy {
			partLabel = "Part " + canonical.PartID
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				part, err := r.catalog.GetPart(ctx, canonical.PartID)
				if err != nil {
					r.logger.Warn("part label fetch failed", slog.String(logging.FieldPartID, canonical.PartID), logging.Error(err))
					return
				}
				partLabel = fmt.Sprintf("Part %d", part.PartNumber)
			}()
		}
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Trail{}, err
	}

	trail := Trail{Crumbs: []Crumb{{Label: projectLabel, Href: projectHref(canonical.ProjectID)}}}
	if canonical.EpisodeID != "" {
		trail.Crumbs = append(trail.Crumbs,
			Crumb{Label: "Episodes", Href: episodesHref(canonical.ProjectID)},
			Crumb{Label: episodeLabel, Href: episodeHref(canonical.ProjectID, canonical.EpisodeID)},
		)
		if canonical.PartID != "" {
			href := partHref(canonical.ProjectID, canonical.EpisodeID, canonical.PartID)
			if legacy {
				href = sceneHref(canonical.ProjectID, canonical.EpisodeID, canonical.PartID)
			}
			trail.Crumbs = append(trail.Crumbs, Crumb{Label: partLabel, Href: href})
		}
	}
	return trail, nil
}

func projectHref(projectID string) string {
	return "/project/" + projectID
}

func episodesHref(projectID string) string {
	return projectHref(projectID) + "/episodes"
}

func episodeHref(projectID, episodeID string) string {
	return projectHref(projectID) + "/episode/" + episodeID
}

func partHref(projectID, episodeID, partID string) string {
	return episodeHref(projectID, episodeID) + "/part/" + partID
}

func sceneHref(projectID, episodeID, sceneID string) string {
	return episodeHref(projectID, episodeID) + "/scene/" + sceneID
}
