package artifact

import (
	"database/sql"
	"errors"
	"time"
)

const versionColumns = "id, artifact_id, number, label, status, active, feedback, content, created_at, updated_at"

func scanArtifact(scanner interface{ Scan(dest ...any) error }) (*Artifact, error) {
	var (
		id         string
		partID     string
		kindStr    string
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &partID, &kindStr, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	artifact := &Artifact{ID: id, PartID: partID, Kind: Kind(kindStr)}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		artifact.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		artifact.UpdatedAt = updated
	}
	return artifact, nil
}

func scanVersion(scanner interface{ Scan(dest ...any) error }) (*Version, error) {
	var (
		id         int64
		artifactID string
		number     int
		label      sql.NullString
		statusStr  string
		active     sql.NullInt64
		feedback   sql.NullString
		content    sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&artifactID,
		&number,
		&label,
		&statusStr,
		&active,
		&feedback,
		&content,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	version := &Version{
		ID:         id,
		ArtifactID: artifactID,
		Number:     number,
		Label:      label.String,
		Status:     Status(statusStr),
		Feedback:   feedback.String,
		Content:    content.String,
	}
	if active.Valid {
		version.Active = active.Int64 != 0
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		version.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		version.UpdatedAt = updated
	}
	return version, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
