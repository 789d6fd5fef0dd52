package filters

import (
	"github.com/iwata-n/repospots/lib/model"
)

// CommitClassifier decides which commits are skipped and which are large.
type CommitClassifier struct {
	largeCommitLines int
}

// NewCommitClassifier creates a classifier. A largeCommitLines of zero or
// less turns large commit tracking off: IsLarge is then always false.
func NewCommitClassifier(largeCommitLines int) *CommitClassifier {
	return &CommitClassifier{
		largeCommitLines: largeCommitLines,
	}
}

// IsMerge returns true for commits with more than one parent. Those are
// skipped by the walk.
func (c *CommitClassifier) IsMerge(commit *model.Commit) bool {
	return IsMerge(commit)
}

func (c *CommitClassifier) IsLarge(commit *model.Commit) bool {
	return c.LargeCommitTracking() && commit.TotalLines > c.largeCommitLines
}

func (c *CommitClassifier) LargeCommitTracking() bool {
	return c.largeCommitLines > 0
}

func IsMerge(commit *model.Commit) bool {
	return commit.CountParents() > 1
}

func IsLarge(commit *model.Commit, thresholdLines int) bool {
	return NewCommitClassifier(thresholdLines).IsLarge(commit)
}
