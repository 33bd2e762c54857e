package plan

import (
	"errors"
	"io/fs"
	"os"
)

// Resolver tracks destination paths claimed during a single planning pass,
// so several not-yet-moved files sharing a name resolve to distinct slots.
// It is meant for sequential use within one scan; create a fresh Resolver
// per pass so repeated previews stay idempotent.
type Resolver struct {
	claimed map[string]struct{}
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{claimed: make(map[string]struct{})}
}

// Resolve returns the first collision candidate of dest that is neither
// claimed in this pass nor present on the filesystem, and claims it.
func (r *Resolver) Resolve(dest string) string {
	for n := 0; ; n++ {
		candidate := Candidate(dest, n)
		if _, taken := r.claimed[candidate]; taken {
			continue
		}
		if _, err := os.Lstat(candidate); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		r.claimed[candidate] = struct{}{}
		return candidate
	}
}
