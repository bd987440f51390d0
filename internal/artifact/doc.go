// Package artifact persists versioned production artifacts in SQLite.
//
// Each part holds one artifact per kind; each artifact holds an append-only
// version history numbered from 1 with no gaps. Exactly one version is active
// once any exist, enforced by a partial unique index and flipped atomically
// inside a single transaction. Versions are never deleted or renumbered.
package artifact
