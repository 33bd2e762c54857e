package plan

// Source describes one root directory to scan.
type Source struct {
	Path      string
	Recursive bool
}

// Move is one planned relocation. It is transient: consumed once by the
// executor and never persisted.
type Move struct {
	Source          string
	Dest            string
	Size            int64
	DisplayCategory string
	DateFolder      string
}

// Group collects the planned moves of one display category.
type Group struct {
	Category string
	Moves    []Move
}

// Plan is the scanner's output: moves grouped by display category (sorted
// for deterministic rendering) plus the filenames that skip rules excluded.
type Plan struct {
	Groups  []Group
	Skipped []string
}

// Total returns the number of planned moves.
func (p *Plan) Total() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Moves)
	}
	return n
}

// TotalSize returns the combined size in bytes of all planned moves.
func (p *Plan) TotalSize() int64 {
	var n int64
	for _, g := range p.Groups {
		for _, m := range g.Moves {
			n += m.Size
		}
	}
	return n
}
