package model

// RunParameters configure one analysis run. They are not changed while the
// run is in progress.
type RunParameters struct {
	Path   string
	Branch string

	// Depth limits the number of commits read from the branch. nil means no limit.
	Depth *int

	Exclude []string

	// LargeCommitLines is the changed lines threshold above which a commit is
	// considered large. Zero or negative disables large commit tracking.
	LargeCommitLines int

	Top    int
	Member []string
}

func (p *RunParameters) Unbounded() bool {
	return p.Depth == nil
}
