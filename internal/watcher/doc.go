// Package watcher organizes files as they appear in watched source roots.
//
// Filesystem events only nominate candidates; nothing moves until a file
// proves stable. Each candidate sits in a pending set for a settle delay,
// then its size is sampled twice across a short pause. Matching samples mean
// the writer has finished and the file is planned and moved; a growing file
// is re-armed with a fresh timestamp and tried again on a later tick. The
// event loop, pending drain, and moves all run on one goroutine, so the
// in-process state needs no locking.
package watcher
