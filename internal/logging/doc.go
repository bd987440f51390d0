// Package logging builds the slog loggers used across the daemon and CLI.
//
// Two output formats are supported: a condensed console format for humans and
// a JSON format for machine ingestion. Standardized field keys keep artifact,
// part, and operation identifiers consistent across subsystems.
package logging
