package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backlot/internal/services"
)

// EnsureArtifact returns the artifact for a part and kind, creating it on
// first use.
func (s *Store) EnsureArtifact(ctx context.Context, partID string, kind Kind) (*Artifact, error) {
	if partID == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "ensure artifact", "part id required", nil)
	}
	if _, ok := kindSet[kind]; !ok {
		return nil, services.Wrap(services.ErrValidation, "store", "ensure artifact",
			fmt.Sprintf("unknown kind %q", kind), nil)
	}

	existing, err := s.FindArtifact(ctx, partID, kind)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	id := uuid.NewString()
	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO artifacts (id, part_id, kind, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (part_id, kind) DO NOTHING`,
		id, partID, kind, timestamp, timestamp,
	); err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "ensure artifact", "insert artifact", err)
	}
	return s.FindArtifact(ctx, partID, kind)
}

// FindArtifact fetches an artifact by part and kind.
func (s *Store) FindArtifact(ctx context.Context, partID string, kind Kind) (*Artifact, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, part_id, kind, created_at, updated_at FROM artifacts WHERE part_id = ? AND kind = ?`,
		partID, kind,
	)
	artifact, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "find artifact",
			fmt.Sprintf("no %s artifact for part %s", kind, partID), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "find artifact", "scan artifact", err)
	}
	return artifact, nil
}

// GetArtifact fetches an artifact by identifier.
func (s *Store) GetArtifact(ctx context.Context, artifactID string) (*Artifact, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, part_id, kind, created_at, updated_at FROM artifacts WHERE id = ?`,
		artifactID,
	)
	artifact, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get artifact",
			fmt.Sprintf("artifact %s not found", artifactID), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "get artifact", "scan artifact", err)
	}
	return artifact, nil
}

// ListArtifacts returns all artifacts for a part ordered by kind.
func (s *Store) ListArtifacts(ctx context.Context, partID string) ([]*Artifact, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, part_id, kind, created_at, updated_at FROM artifacts WHERE part_id = ? ORDER BY kind`,
		partID,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "list artifacts", "query artifacts", err)
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "store", "list artifacts", "scan artifact", err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, rows.Err()
}

// ListVersions returns an artifact's versions ordered by number. Empty before
// the first generation, never empty after.
func (s *Store) ListVersions(ctx context.Context, artifactID string) ([]*Version, error) {
	if _, err := s.GetArtifact(ctx, artifactID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+versionColumns+` FROM artifact_versions WHERE artifact_id = ? ORDER BY number`,
		artifactID,
	)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "list versions", "query versions", err)
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "store", "list versions", "scan version", err)
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

// GetVersion fetches one version of an artifact.
func (s *Store) GetVersion(ctx context.Context, artifactID string, versionID int64) (*Version, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM artifact_versions WHERE artifact_id = ? AND id = ?`,
		artifactID, versionID,
	)
	version, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get version",
			fmt.Sprintf("version %d not found on artifact %s", versionID, artifactID), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "get version", "scan version", err)
	}
	return version, nil
}

// ActiveVersion returns the currently active version of an artifact, or
// NotFound when no version exists yet.
func (s *Store) ActiveVersion(ctx context.Context, artifactID string) (*Version, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM artifact_versions WHERE artifact_id = ? AND active = 1`,
		artifactID,
	)
	version, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "active version",
			fmt.Sprintf("artifact %s has no versions", artifactID), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "active version", "scan version", err)
	}
	return version, nil
}

// AppendVersion creates the next version of an artifact: number max+1 (1 when
// empty), status draft, active. The prior active version is deactivated in
// the same transaction. This is the only creation path for versions.
func (s *Store) AppendVersion(ctx context.Context, artifactID, content, label, feedback string) (*Version, error) {
	if _, err := s.GetArtifact(ctx, artifactID); err != nil {
		return nil, err
	}

	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	var newID int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(number), 0) + 1 FROM artifact_versions WHERE artifact_id = ?`,
			artifactID,
		).Scan(&next); err != nil {
			return fmt.Errorf("next version number: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE artifact_versions SET active = 0, updated_at = ? WHERE artifact_id = ? AND active = 1`,
			timestamp, artifactID,
		); err != nil {
			return fmt.Errorf("deactivate prior version: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO artifact_versions (artifact_id, number, label, status, active, feedback, content, created_at, updated_at)
             VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?)`,
			artifactID, next, nullableString(label), StatusDraft, nullableString(feedback), content, timestamp, timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		newID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "append version", "append", err)
	}
	return s.GetVersion(ctx, artifactID, newID)
}

// SetActive atomically moves the active flag to the target version. NotFound
// when the version is not in the artifact's set; activating the already
// active version is a no-op.
func (s *Store) SetActive(ctx context.Context, artifactID string, versionID int64) (*Version, error) {
	return s.activate(ctx, artifactID, versionID, "")
}

// Restore is SetActive labelled for audit display: the restored version's
// label records which version it displaced.
func (s *Store) Restore(ctx context.Context, artifactID string, versionID int64) (*Version, error) {
	prior, err := s.ActiveVersion(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	return s.activate(ctx, artifactID, versionID, fmt.Sprintf("restored over v%d", prior.Number))
}

func (s *Store) activate(ctx context.Context, artifactID string, versionID int64, label string) (*Version, error) {
	target, err := s.GetVersion(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	if target.Active {
		return target, nil
	}

	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	err = retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`UPDATE artifact_versions SET active = 0, updated_at = ? WHERE artifact_id = ? AND active = 1`,
			timestamp, artifactID,
		); err != nil {
			return fmt.Errorf("deactivate prior version: %w", err)
		}

		if label != "" {
			_, err = tx.ExecContext(ctx,
				`UPDATE artifact_versions SET active = 1, label = ?, updated_at = ? WHERE artifact_id = ? AND id = ?`,
				label, timestamp, artifactID, versionID,
			)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE artifact_versions SET active = 1, updated_at = ? WHERE artifact_id = ? AND id = ?`,
				timestamp, artifactID, versionID,
			)
		}
		if err != nil {
			return fmt.Errorf("activate version: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "set active", "activate", err)
	}
	return s.GetVersion(ctx, artifactID, versionID)
}

// Approve locks a version as canon. Idempotent: approving an approved
// version returns it unchanged.
func (s *Store) Approve(ctx context.Context, artifactID string, versionID int64) (*Version, error) {
	version, err := s.GetVersion(ctx, artifactID, versionID)
	if err != nil {
		return nil, err
	}
	if version.Status == StatusApproved {
		return version, nil
	}
	if !CanTransition(version.Status, StatusApproved) {
		return nil, services.Wrap(services.ErrConflict, "store", "approve",
			fmt.Sprintf("cannot approve version in status %s", version.Status), nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`UPDATE artifact_versions SET status = ?, updated_at = ? WHERE artifact_id = ? AND id = ?`,
		StatusApproved, timestamp, artifactID, versionID,
	); err != nil {
		return nil, services.Wrap(services.ErrTransient, "store", "approve", "update status", err)
	}
	return s.GetVersion(ctx, artifactID, versionID)
}
