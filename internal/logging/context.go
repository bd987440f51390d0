package logging

import (
	"context"
	"log/slog"

	"backlot/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldArtifactID is the standardized structured logging key for artifact identifiers.
	FieldArtifactID = "artifact_id"
	// FieldPartID is the standardized structured logging key for part identifiers.
	FieldPartID = "part_id"
	// FieldKind is the standardized structured logging key for artifact kinds.
	FieldKind = "kind"
	// FieldVersion is the standardized structured logging key for version numbers.
	FieldVersion = "version"
	// FieldOperation is the standardized structured logging key for session operation names.
	FieldOperation = "operation"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// Error wraps an error for structured logging, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.ArtifactIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldArtifactID, id))
	}
	if op, ok := services.OperationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOperation, op))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, attr := range fields {
		args = append(args, attr)
	}
	return logger.With(args...)
}
