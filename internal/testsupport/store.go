package testsupport

import (
	"testing"

	"backlot/internal/artifact"
	"backlot/internal/config"
)

// MustOpenStore opens an artifact store for tests and closes it on cleanup.
func MustOpenStore(t *testing.T, cfg *config.Config) *artifact.Store {
	t.Helper()

	store, err := artifact.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}
