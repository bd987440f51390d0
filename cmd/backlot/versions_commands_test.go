package main

import (
	"context"
	"fmt"
	"testing"

	"backlot/internal/artifact"
	"backlot/internal/generation"
)

func seedArtifact(t *testing.T, env *cliTestEnv, versions int) string {
	t.Helper()
	ctx := context.Background()
	list, err := env.service.List(ctx, "pt1", artifact.KindBeatMap)
	if err != nil {
		t.Fatalf("ensure artifact: %v", err)
	}
	for i := 0; i < versions; i++ {
		env.generator.Results = append(env.generator.Results, &generation.Result{
			Content: "[]",
			Label:   fmt.Sprintf("take %d", i+1),
		})
		if _, err := env.service.Retry(ctx, list.Artifact.ID); err != nil {
			t.Fatalf("seed version %d: %v", i+1, err)
		}
	}
	return list.Artifact.ID
}

func TestVersionsListShowsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	seedArtifact(t, env, 2)

	out, err := runCommand(t, newVersionsListCommand(env.ctx), "--part", "pt1", "--kind", "beat_map")
	if err != nil {
		t.Fatalf("versions list: %v", err)
	}
	requireContains(t, out, "Beat Map for part pt1")
	requireContains(t, out, "v2")
	requireContains(t, out, "take 2")
}

func TestVersionsListEmptyHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCommand(t, newVersionsListCommand(env.ctx), "--part", "pt1", "--kind", "shot_list")
	if err != nil {
		t.Fatalf("versions list: %v", err)
	}
	requireContains(t, out, "No versions yet")
}

func TestVersionsActivateCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	artifactID := seedArtifact(t, env, 2)

	versions, err := env.service.List(context.Background(), "pt1", artifact.KindBeatMap)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	first := versions.Versions[0]

	out, err := runCommand(t, newVersionsActivateCommand(env.ctx),
		"--artifact", artifactID, "--version", fmt.Sprint(first.ID))
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	requireContains(t, out, "v1")
	requireContains(t, out, "(active)")
}

func TestApproveThenRetryFails(t *testing.T) {
	env := setupCLITestEnv(t)
	artifactID := seedArtifact(t, env, 1)

	versions, err := env.service.List(context.Background(), "pt1", artifact.KindBeatMap)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	active := versions.Versions[0]

	if _, err := runCommand(t, newApproveCommand(env.ctx),
		"--artifact", artifactID, "--version", fmt.Sprint(active.ID)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := runCommand(t, newRetryCommand(env.ctx), "--artifact", artifactID); err == nil {
		t.Fatal("retry on an approved version should fail")
	}
}

func TestGenerateCommandCarriesFeedback(t *testing.T) {
	env := setupCLITestEnv(t)
	artifactID := seedArtifact(t, env, 1)

	out, err := runCommand(t, newGenerateCommand(env.ctx),
		"--artifact", artifactID, "--feedback", "more tension in the chase")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "v2")

	last := env.generator.Requests[len(env.generator.Requests)-1]
	if last.Feedback != "more tension in the chase" {
		t.Fatalf("feedback = %q", last.Feedback)
	}
}

func TestSummaryCommandRejectsUnknownScope(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCommand(t, newSummaryCommand(env.ctx), "--scope", "galaxy"); err == nil {
		t.Fatal("unknown scope should be rejected")
	}
}

func TestBreadcrumbCommandProjectOnly(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCommand(t, newBreadcrumbCommand(env.ctx), "--project", "p1")
	if err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}
	requireContains(t, out, "(no trail)")
}
