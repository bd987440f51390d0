package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"backlot/internal/api"
	"backlot/internal/config"
	"backlot/internal/logging"
	"backlot/internal/studio"
	"backlot/internal/testsupport"
)

type cliTestEnv struct {
	ctx       *commandContext
	generator *testsupport.StubGenerator
	service   *api.VersionService
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	generator := &testsupport.StubGenerator{}
	session := studio.NewSession(store, &testsupport.StubCatalog{}, generator, logging.NewNop())
	t.Cleanup(func() { _ = session.Close() })

	service := api.NewVersionService(session)

	ctx := newCommandContext(new(string))
	ctx.config = cfg
	ctx.configOnce.Do(func() {})
	ctx.newService = func(*config.Config) (*api.VersionService, func() error, error) {
		return service, nil, nil
	}

	return &cliTestEnv{ctx: ctx, generator: generator, service: service}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
