// Package fileutil provides small filesystem helpers shared by the mover and
// undo paths: streaming copies and rename-with-fallback moves.
package fileutil
