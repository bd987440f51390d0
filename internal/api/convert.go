package api

import (
	"backlot/internal/aggregate"
	"backlot/internal/artifact"
	"backlot/internal/hierarchy"
)

// FromVersion converts a store version into its API representation.
func FromVersion(version *artifact.Version) Version {
	if version == nil {
		return Version{}
	}
	dto := Version{
		ID:         version.ID,
		ArtifactID: version.ArtifactID,
		Number:     version.Number,
		Label:      version.Label,
		Status:     string(version.Status),
		Active:     version.Active,
		Approved:   version.Approved(),
		Feedback:   version.Feedback,
	}
	if !version.CreatedAt.IsZero() {
		dto.CreatedAt = version.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !version.UpdatedAt.IsZero() {
		dto.UpdatedAt = version.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromVersions converts a version slice, preserving order.
func FromVersions(versions []*artifact.Version) []Version {
	out := make([]Version, 0, len(versions))
	for _, version := range versions {
		out = append(out, FromVersion(version))
	}
	return out
}

// FromArtifact converts a store artifact into its API representation.
func FromArtifact(art *artifact.Artifact) Artifact {
	if art == nil {
		return Artifact{}
	}
	dto := Artifact{
		ID:        art.ID,
		PartID:    art.PartID,
		Kind:      string(art.Kind),
		KindLabel: art.Kind.Label(),
	}
	if !art.CreatedAt.IsZero() {
		dto.CreatedAt = art.CreatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromTrail converts a resolved breadcrumb trail.
func FromTrail(trail hierarchy.Trail) BreadcrumbResponse {
	resp := BreadcrumbResponse{Empty: trail.Empty()}
	if resp.Empty {
		return resp
	}
	resp.Crumbs = make([]Crumb, 0, len(trail.Crumbs))
	for _, crumb := range trail.Crumbs {
		resp.Crumbs = append(resp.Crumbs, Crumb{Label: crumb.Label, Href: crumb.Href})
	}
	return resp
}

// FromCounts converts rolled-up counts into a summary payload.
func FromCounts(scope, id string, counts aggregate.Counts) Summary {
	return Summary{
		Scope:           scope,
		ID:              id,
		Beats:           counts.Beats,
		Shots:           counts.Shots,
		Storyboards:     counts.Storyboards,
		Images:          counts.Images,
		Clips:           counts.Clips,
		ScreenplayLines: counts.ScreenplayLines,
		BeatsPerShot:    counts.BeatsPerShot().String(),
	}
}
