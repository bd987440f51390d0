package artifact_test

import (
	"context"
	"errors"
	"testing"

	"backlot/internal/artifact"
	"backlot/internal/services"
	"backlot/internal/testsupport"
)

func openStore(t *testing.T) *artifact.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func mustEnsure(t *testing.T, store *artifact.Store, partID string, kind artifact.Kind) *artifact.Artifact {
	t.Helper()
	art, err := store.EnsureArtifact(context.Background(), partID, kind)
	if err != nil {
		t.Fatalf("ensure artifact: %v", err)
	}
	return art
}

func mustAppend(t *testing.T, store *artifact.Store, artifactID, content, label, feedback string) *artifact.Version {
	t.Helper()
	version, err := store.AppendVersion(context.Background(), artifactID, content, label, feedback)
	if err != nil {
		t.Fatalf("append version: %v", err)
	}
	return version
}

func activeCount(t *testing.T, versions []*artifact.Version) int {
	t.Helper()
	count := 0
	for _, v := range versions {
		if v.Active {
			count++
		}
	}
	return count
}

func TestEnsureArtifactIsIdempotent(t *testing.T) {
	store := openStore(t)
	first := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	second := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	if first.ID != second.ID {
		t.Fatalf("ensure created a duplicate artifact: %s vs %s", first.ID, second.ID)
	}
	other := mustEnsure(t, store, "part-1", artifact.KindShotList)
	if other.ID == first.ID {
		t.Fatal("different kinds must be distinct artifacts")
	}
}

func TestEnsureArtifactRejectsUnknownKind(t *testing.T) {
	store := openStore(t)
	_, err := store.EnsureArtifact(context.Background(), "part-1", artifact.Kind("poster"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListVersionsEmptyBeforeFirstGeneration(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	versions, err := store.ListVersions(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 0 {
		t.Fatalf("expected no versions, got %d", len(versions))
	}
	if _, err := store.ActiveVersion(context.Background(), art.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for active version, got %v", err)
	}
}

func TestAppendVersionNumbersAreGapFree(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindStoryboard)

	for i := 0; i < 3; i++ {
		mustAppend(t, store, art.ID, "content", "", "")
	}

	versions, err := store.ListVersions(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(versions))
	}
	for i, v := range versions {
		if v.Number != i+1 {
			t.Fatalf("version %d has number %d, want %d", i, v.Number, i+1)
		}
	}
	if versions[2].Status != artifact.StatusDraft {
		t.Fatalf("new version status = %s, want draft", versions[2].Status)
	}
}

func TestExactlyOneActiveVersion(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)

	mustAppend(t, store, art.ID, "v1", "", "")
	mustAppend(t, store, art.ID, "v2", "", "")
	v3 := mustAppend(t, store, art.ID, "v3", "", "")

	versions, err := store.ListVersions(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if got := activeCount(t, versions); got != 1 {
		t.Fatalf("active count = %d, want 1", got)
	}
	active, err := store.ActiveVersion(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("active version: %v", err)
	}
	if active.ID != v3.ID {
		t.Fatalf("active = version %d, want newest %d", active.Number, v3.Number)
	}
}

func TestSetActiveFlipsPair(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	v1 := mustAppend(t, store, art.ID, "v1", "", "")
	mustAppend(t, store, art.ID, "v2", "", "")

	activated, err := store.SetActive(context.Background(), art.ID, v1.ID)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if !activated.Active {
		t.Fatal("target not active after SetActive")
	}

	versions, err := store.ListVersions(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if got := activeCount(t, versions); got != 1 {
		t.Fatalf("active count = %d, want 1", got)
	}
}

func TestSetActiveUnknownVersionIsNotFound(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	mustAppend(t, store, art.ID, "v1", "", "")

	if _, err := store.SetActive(context.Background(), art.ID, 9999); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	other := mustEnsure(t, store, "part-2", artifact.KindBeatMap)
	foreign := mustAppend(t, store, other.ID, "v1", "", "")
	if _, err := store.SetActive(context.Background(), art.ID, foreign.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("foreign version must not activate, got %v", err)
	}
}

func TestSetActiveAlreadyActiveIsNoOp(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	v1 := mustAppend(t, store, art.ID, "v1", "", "")

	again, err := store.SetActive(context.Background(), art.ID, v1.ID)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if !again.Active || again.ID != v1.ID {
		t.Fatalf("no-op activation changed state: %+v", again)
	}
}

func TestRestoreLabelsAndKeepsHistory(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindStoryboard)
	v1 := mustAppend(t, store, art.ID, "v1", "", "")
	mustAppend(t, store, art.ID, "v2", "", "")
	v3 := mustAppend(t, store, art.ID, "v3", "", "")

	restored, err := store.Restore(context.Background(), art.ID, v1.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Active {
		t.Fatal("restored version not active")
	}
	if restored.Label != "restored over v3" {
		t.Fatalf("restore label = %q", restored.Label)
	}

	versions, err := store.ListVersions(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("restore must not delete versions, got %d", len(versions))
	}
	for i, v := range versions {
		if v.Number != i+1 {
			t.Fatalf("restore must not renumber: version %d has number %d", i, v.Number)
		}
	}

	next := mustAppend(t, store, art.ID, "v4", "", "")
	if next.Number != v3.Number+1 {
		t.Fatalf("append after restore numbered %d, want %d", next.Number, v3.Number+1)
	}
}

func TestApproveIsIdempotentAndTerminal(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	v1 := mustAppend(t, store, art.ID, "v1", "", "")

	approved, err := store.Approve(context.Background(), art.ID, v1.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != artifact.StatusApproved {
		t.Fatalf("status = %s, want approved", approved.Status)
	}

	again, err := store.Approve(context.Background(), art.ID, v1.ID)
	if err != nil {
		t.Fatalf("second approve should be a no-op, got %v", err)
	}
	if again.Status != artifact.StatusApproved {
		t.Fatalf("status changed on repeat approve: %s", again.Status)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from artifact.Status
		to   artifact.Status
		want bool
	}{
		{"draft_to_iterating", artifact.StatusDraft, artifact.StatusIterating, true},
		{"draft_to_approved", artifact.StatusDraft, artifact.StatusApproved, true},
		{"iterating_to_approved", artifact.StatusIterating, artifact.StatusApproved, true},
		{"iterating_to_draft", artifact.StatusIterating, artifact.StatusDraft, true},
		{"approved_to_draft", artifact.StatusApproved, artifact.StatusDraft, false},
		{"approved_to_iterating", artifact.StatusApproved, artifact.StatusIterating, false},
		{"approved_to_approved", artifact.StatusApproved, artifact.StatusApproved, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := artifact.CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestParseKindAndStatus(t *testing.T) {
	if kind, ok := artifact.ParseKind(" Beat_Map "); !ok || kind != artifact.KindBeatMap {
		t.Fatalf("ParseKind = %q, %v", kind, ok)
	}
	if _, ok := artifact.ParseKind("poster"); ok {
		t.Fatal("unknown kind must not parse")
	}
	if status, ok := artifact.ParseStatus("APPROVED"); !ok || status != artifact.StatusApproved {
		t.Fatalf("ParseStatus = %q, %v", status, ok)
	}
	if got := artifact.KindBeatMap.Label(); got != "Beat Map" {
		t.Fatalf("Label = %q, want %q", got, "Beat Map")
	}
}

func TestStats(t *testing.T) {
	store := openStore(t)
	art := mustEnsure(t, store, "part-1", artifact.KindBeatMap)
	v1 := mustAppend(t, store, art.ID, "v1", "", "")
	mustAppend(t, store, art.ID, "v2", "", "")
	if _, err := store.Approve(context.Background(), art.ID, v1.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Artifacts != 1 || stats.Versions != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ActiveVersions != 1 || stats.ApprovedVersions != 1 || stats.DraftVersions != 1 {
		t.Fatalf("unexpected status breakdown: %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	store := openStore(t)
	mustEnsure(t, store, "part-1", artifact.KindBeatMap)

	health := store.Health(context.Background())
	if !health.DatabaseExists || !health.DatabaseReadable {
		t.Fatalf("unexpected health: %+v", health)
	}
	if !health.IntegrityCheck {
		t.Fatalf("integrity check failed: %+v", health)
	}
	if health.TotalArtifacts != 1 {
		t.Fatalf("total artifacts = %d, want 1", health.TotalArtifacts)
	}
}
