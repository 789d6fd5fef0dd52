// Package history walks the commits of a branch and aggregates the
// statistics used to find hotspot files.
package history

import (
	"context"

	"github.com/iwata-n/repospots/lib/model"
)

// CommitSource gives access to the history of a repository.
type CommitSource interface {
	// Resolve returns the hash of the commit branch points to.
	Resolve(ctx context.Context, branch string) (string, error)

	// Log lists commits reachable from head, newest first.
	Log(ctx context.Context, head string) (CommitIter, error)
}

// CountingSource is implemented by sources that can count the commits a
// walk will read without computing their changes.
type CountingSource interface {
	Count(ctx context.Context, head string, limit *int) (int, error)
}

// CommitIter is a lazy sequence of commits. Next returns io.EOF after the
// last commit.
type CommitIter interface {
	Next() (*model.Commit, error)
	Close()
}
