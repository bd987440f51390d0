package artifact

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies which generated document an artifact holds for its part.
type Kind string

const (
	KindBeatMap    Kind = "beat_map"
	KindShotList   Kind = "shot_list"
	KindStoryboard Kind = "storyboard"
	KindImages     Kind = "images"
	KindClips      Kind = "clips"
)

var allKinds = []Kind{
	KindBeatMap,
	KindShotList,
	KindStoryboard,
	KindImages,
	KindClips,
}

var kindSet = func() map[Kind]struct{} {
	set := make(map[Kind]struct{}, len(allKinds))
	for _, kind := range allKinds {
		set[kind] = struct{}{}
	}
	return set
}()

var titleCaser = cases.Title(language.English)

// AllKinds returns the ordered list of known artifact kinds.
func AllKinds() []Kind {
	cp := make([]Kind, len(allKinds))
	copy(cp, allKinds)
	return cp
}

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := kindSet[normalized]
	return normalized, ok
}

// Label returns the human presentation of the kind, e.g. "Beat Map".
func (k Kind) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(k), "_", " "))
}

// Status represents the approval lifecycle of a version.
//
// Every new version starts as draft. Iterating marks a feedback-bearing
// regeneration in flight and is never persisted; it exists only in a session's
// view of the artifact. Approved is terminal.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusIterating Status = "iterating"
	StatusApproved  Status = "approved"
)

var allStatuses = []Status{
	StatusDraft,
	StatusIterating,
	StatusApproved,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// CanTransition reports whether the lifecycle permits moving between two
// statuses. Approved admits no exit; approve is idempotent.
func CanTransition(from, to Status) bool {
	if from == to {
		return from == StatusApproved || from == StatusDraft
	}
	switch from {
	case StatusDraft:
		return to == StatusIterating || to == StatusApproved
	case StatusIterating:
		return to == StatusDraft || to == StatusApproved
	default:
		return false
	}
}

// Artifact is one versioned document slot attached to a part. Each part holds
// at most one artifact per kind.
type Artifact struct {
	ID        string
	PartID    string
	Kind      Kind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version is one immutable entry in an artifact's history. Numbers start at 1
// and are gap free; exactly one version per artifact is active once any exist.
type Version struct {
	ID         int64
	ArtifactID string
	Number     int
	Label      string
	Status     Status
	Active     bool
	Feedback   string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Approved reports whether the version has been locked as canon.
func (v *Version) Approved() bool {
	return v != nil && v.Status == StatusApproved
}

// Stats summarizes the store contents for status and health commands.
type Stats struct {
	Artifacts        int
	Versions         int
	ActiveVersions   int
	ApprovedVersions int
	DraftVersions    int
}

// DatabaseHealth captures diagnostic information about the artifact database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	IntegrityCheck   bool
	TotalArtifacts   int
	Error            string
}
