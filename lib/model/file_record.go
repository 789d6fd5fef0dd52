package model

import (
	"sort"
	"time"

	"github.com/hashicorp/go-set/v2"
)

type FileRecord struct {
	Path string

	// Commits is kept in traversal order, newest first.
	Commits    []string
	AuthoredAt []time.Time

	// ChangedLines sums the lines changed in this file by the recorded commits.
	ChangedLines int

	// LargeCommits maps the hash of each large commit that touched this file
	// to the changed lines of that commit.
	LargeCommits map[string]int

	authors       *set.Set[string]
	authorCommits map[string]int
}

func NewFileRecord(path string) *FileRecord {
	return &FileRecord{
		Path:          path,
		LargeCommits:  map[string]int{},
		authors:       set.New[string](4),
		authorCommits: map[string]int{},
	}
}

func (f *FileRecord) add(commit *Commit, lines int) {
	f.ChangedLines += lines
	f.Commits = append(f.Commits, commit.Hash)
	f.AuthoredAt = append(f.AuthoredAt, commit.AuthoredAt)
	f.authors.Insert(commit.Author)
	f.authorCommits[commit.Author]++
}

func (f *FileRecord) addLarge(commit *Commit, lines int) {
	f.LargeCommits[commit.Hash] = lines
}

func (f *FileRecord) CommitCount() int {
	return len(f.Commits)
}

func (f *FileRecord) AuthorCount() int {
	return f.authors.Size()
}

func (f *FileRecord) LargeCommitCount() int {
	return len(f.LargeCommits)
}

// Risk is commits * distinct authors. Always computed from the current state.
func (f *FileRecord) Risk() int {
	return f.CommitCount() * f.AuthorCount()
}

// ListAuthors returns the distinct authors sorted by name.
func (f *FileRecord) ListAuthors() []string {
	result := f.authors.Slice()
	sort.Strings(result)
	return result
}

// CountCommitsBy returns how many of the recorded commits were authored by name.
func (f *FileRecord) CountCommitsBy(name string) int {
	return f.authorCommits[name]
}

func (f *FileRecord) FirstSeen() time.Time {
	return f.seen(func(a, b time.Time) bool { return a.Before(b) })
}

func (f *FileRecord) LastSeen() time.Time {
	return f.seen(func(a, b time.Time) bool { return a.After(b) })
}

func (f *FileRecord) seen(better func(a, b time.Time) bool) time.Time {
	var result time.Time
	for _, t := range f.AuthoredAt {
		if result.IsZero() || better(t, result) {
			result = t
		}
	}
	return result
}
