package services

import "context"

type contextKey string

const (
	artifactIDKey contextKey = "artifact_id"
	operationKey  contextKey = "operation"
	requestIDKey  contextKey = "request_id"
)

// WithArtifactID annotates context with the artifact identifier being operated on.
func WithArtifactID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, artifactIDKey, id)
}

// ArtifactIDFromContext extracts the artifact identifier if present.
func ArtifactIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(artifactIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithOperation annotates context with the session operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(operationKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(requestIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
