package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"backlot/internal/config"
)

// Store manages artifact and version persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the artifact database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "backlot.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Health inspects the database file and reports diagnostics.
func (s *Store) Health(ctx context.Context) DatabaseHealth {
	health := DatabaseHealth{DBPath: s.path}
	if _, err := os.Stat(s.path); err != nil {
		health.Error = err.Error()
		return health
	}
	health.DatabaseExists = true

	ctx = ensureContext(ctx)
	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		health.Error = err.Error()
		return health
	}
	health.DatabaseReadable = true
	health.SchemaVersion = fmt.Sprintf("%d", version)

	var integrity string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		health.Error = err.Error()
		return health
	}
	health.IntegrityCheck = integrity == "ok"

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM artifacts").Scan(&health.TotalArtifacts); err != nil {
		health.Error = err.Error()
	}
	return health
}

// Stats returns aggregate counts across all artifacts and versions.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	var stats Stats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM artifacts").Scan(&stats.Artifacts); err != nil {
		return Stats{}, fmt.Errorf("count artifacts: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(active), 0),
               COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
        FROM artifact_versions`, StatusApproved, StatusDraft)
	if err := row.Scan(&stats.Versions, &stats.ActiveVersions, &stats.ApprovedVersions, &stats.DraftVersions); err != nil {
		return Stats{}, fmt.Errorf("count versions: %w", err)
	}
	return stats, nil
}
