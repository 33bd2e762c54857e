// Package main hosts the sortd CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into organizer
// operations: previewing a move plan, executing it, undoing the most recent
// batch, listing history, running the filesystem watcher, and scaffolding or
// inspecting configuration. It centralizes configuration loading, structured
// logging setup, and table rendering so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
