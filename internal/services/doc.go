// Package services holds the cross-cutting error markers and context helpers
// shared by the store, session, and external collaborator clients.
//
// Errors are classified by wrapping one of the exported sentinels; callers use
// errors.Is against those sentinels (or Retryable) instead of inspecting
// message text. Context helpers thread artifact, operation, and correlation
// identifiers through to structured logging.
package services
