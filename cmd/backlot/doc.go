// Package main hosts the backlot CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the versioned artifact model:
// listing and activating versions, feedback-driven regeneration, approval,
// hierarchy breadcrumbs, content summaries, and configuration scaffolding.
// Commands stay declarative; the heavy lifting lives in the internal
// packages and is reached through a shared service context.
package main
