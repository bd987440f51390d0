package hierarchy

import "strings"

// Location identifies a point in the project hierarchy. Identifiers are
// opaque strings; only presence matters. SceneID is the legacy alias for
// PartID and is ignored whenever PartID is set.
type Location struct {
	ProjectID string
	EpisodeID string
	PartID    string
	SceneID   string
}

// Canonical collapses the legacy scene alias into a single part identifier
// and reports whether the location resolved through the legacy scheme.
func (l Location) Canonical() (Location, bool) {
	out := Location{
		ProjectID: strings.TrimSpace(l.ProjectID),
		EpisodeID: strings.TrimSpace(l.EpisodeID),
		PartID:    strings.TrimSpace(l.PartID),
	}
	scene := strings.TrimSpace(l.SceneID)
	if out.PartID != "" {
		return out, false
	}
	if scene != "" {
		out.PartID = scene
		return out, true
	}
	return out, false
}

// Depth reports how deep the location reaches: 0 empty, 1 project,
// 2 episode, 3 part.
func (l Location) Depth() int {
	canonical, _ := l.Canonical()
	switch {
	case canonical.ProjectID == "":
		return 0
	case canonical.EpisodeID == "":
		return 1
	case canonical.PartID == "":
		return 2
	default:
		return 3
	}
}
