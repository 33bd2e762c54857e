// Package plan computes where files should move.
//
// The Planner turns one file into a destination under the target tree
// (category, optional subcategory, optional YYYY-MM bucket) and probes the
// live filesystem for name collisions. The Scanner walks source roots,
// applies skip rules and the already-organized exclusion, and groups the
// resulting moves by display category for preview and execution.
//
// The collision probe happens at plan time and is not atomic with the later
// move; the executor re-claims the destination with an exclusive create, so
// the probe only has to be good enough for preview output.
package plan
