// Package studio composes the artifact store, catalog, generator, resolver,
// and summarizer into a single client session with serialized per-artifact
// writes and read-your-writes consistency.
package studio
