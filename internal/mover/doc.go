// Package mover executes planned moves and records them in history.
//
// Every Execute run opens a fresh history batch before touching the
// filesystem, so each run is its own undo boundary even when nothing moves.
// Destinations are claimed with an exclusive create immediately before the
// move, advancing to the next numbered candidate on conflict; this closes
// the window between plan-time collision probing and the move itself.
// Per-file failures are logged and counted, never fatal to the run.
package mover
