// Package logging builds the slog loggers used across sortd.
//
// It supports console (text) and json formats, level parsing, and teeing
// output into a log file alongside stdout. Attr helpers keep call sites
// compact, and NewComponentLogger stamps every record with the subsystem
// that emitted it.
package logging
