package model

import (
	"time"
)

// Commit is one historical commit as read from a CommitSource. It is never
// changed after being read.
type Commit struct {
	Hash       string
	Author     string
	AuthoredAt time.Time
	Parents    []string

	// TotalLines is the number of changed lines (added + deleted) in the whole commit.
	TotalLines int

	// Files maps each changed path to its changed lines in this commit.
	Files map[string]int
}

func (c *Commit) CountParents() int {
	return len(c.Parents)
}
