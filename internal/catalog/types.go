package catalog

import "backlot/internal/screenplay"

// Project is the top level of the production hierarchy.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Episode groups parts under a project.
type Episode struct {
	ID            string `json:"id"`
	ProjectID     string `json:"projectId"`
	EpisodeNumber int    `json:"episodeNumber"`
	BibleText     string `json:"bibleText"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// Part is the unit of production work. Older records may carry a scene
// identifier instead of a part identifier; resolvers treat the two as aliases.
type Part struct {
	ID         string `json:"id"`
	EpisodeID  string `json:"episodeId"`
	ProjectID  string `json:"projectId"`
	PartNumber int    `json:"partNumber"`
	Title      string `json:"title"`
	ScriptText string `json:"scriptText"`
}

// PartSummary is a part plus the precomputed content counts the catalog
// returns from its project overview endpoint.
type PartSummary struct {
	Part
	BeatCount       int `json:"beatCount"`
	ShotCount       int `json:"shotCount"`
	StoryboardCount int `json:"storyboardCount"`
	ImageCount      int `json:"imageCount"`
	ClipCount       int `json:"clipCount"`
}

// EpisodeFull is an episode with its part summaries.
type EpisodeFull struct {
	Episode
	Parts []PartSummary `json:"parts"`
}

// ProjectFull is the whole-project overview: project, episodes, parts, and
// per-part content counts in a single response.
type ProjectFull struct {
	Project
	Episodes []EpisodeFull `json:"episodes"`
}

// Image is a generated still attached to a part.
type Image struct {
	ID     string `json:"id"`
	PartID string `json:"partId"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// Clip is a generated video segment attached to a part.
type Clip struct {
	ID       string  `json:"id"`
	PartID   string  `json:"partId"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// Beat and Shot documents come back in screenplay form.
type (
	Beat = screenplay.Beat
	Shot = screenplay.Shot
)
