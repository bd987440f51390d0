// Package api defines the transport DTOs shared by the daemon HTTP surface
// and the CLI, plus thin services that adapt the studio session to them.
package api
