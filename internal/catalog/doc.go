// Package catalog provides the read-only client for the studio catalog API
// that owns the project, episode, and part hierarchy and the generated content
// collections attached to parts.
package catalog
