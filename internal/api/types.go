package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Version describes one artifact version in a transport-friendly format.
type Version struct {
	ID         int64  `json:"id"`
	ArtifactID string `json:"artifactId"`
	Number     int    `json:"number"`
	Label      string `json:"label,omitempty"`
	Status     string `json:"status"`
	Active     bool   `json:"isActive"`
	Approved   bool   `json:"isApproved"`
	Feedback   string `json:"feedback,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Artifact describes one artifact slot.
type Artifact struct {
	ID        string `json:"id"`
	PartID    string `json:"partId"`
	Kind      string `json:"kind"`
	KindLabel string `json:"kindLabel"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// VersionListResponse wraps an artifact's version history.
type VersionListResponse struct {
	Artifact Artifact  `json:"artifact"`
	Versions []Version `json:"versions"`
}

// VersionResponse wraps a single version.
type VersionResponse struct {
	Version Version `json:"version"`
}

// Crumb is one level of a breadcrumb trail.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// BreadcrumbResponse carries a resolved trail. Empty means render nothing.
type BreadcrumbResponse struct {
	Crumbs []Crumb `json:"crumbs"`
	Empty  bool    `json:"empty"`
}

// Summary carries rolled-up content counts plus derived metrics.
type Summary struct {
	Scope           string `json:"scope"`
	ID              string `json:"id"`
	Beats           int    `json:"beats"`
	Shots           int    `json:"shots"`
	Storyboards     int    `json:"storyboards"`
	Images          int    `json:"images"`
	Clips           int    `json:"clips"`
	ScreenplayLines int    `json:"screenplayLines"`
	BeatsPerShot    string `json:"beatsPerShot"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	DBPath       string `json:"dbPath"`
	LockFilePath string `json:"lockFilePath"`
	Artifacts    int    `json:"artifacts"`
	Versions     int    `json:"versions"`
}
