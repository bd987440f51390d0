// Package daemon runs the long-lived backlot process: a single-instance
// lock, the studio session, and the HTTP API the CLI talks to.
package daemon
