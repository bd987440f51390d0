package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks lookups that referenced an identifier absent from the
	// entity or version set.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks attempts to apply a transition the lifecycle forbids,
	// such as mutating an approved version.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed input or payloads.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks missing or unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrUpstream marks failures of the catalog or generation collaborators.
	ErrUpstream = errors.New("upstream failure")
	// ErrTransient marks failures with no better classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether the caller may re-offer the failed action.
// NotFound, Conflict, and Validation are usage errors and never retried;
// upstream and transient failures preserve pre-mutation state and stay
// retryable.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return false
	default:
		return true
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
