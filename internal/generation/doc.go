// Package generation wraps the external service that produces artifact
// version documents. Requests with feedback regenerate; requests without
// feedback retry from the same inputs. Transient failures are retried with
// bounded exponential backoff, honoring Retry-After when present.
package generation
