package model

import (
	"testing"
	"time"

	"github.com/bloomberg/go-testgroup"
)

func TestFiles(t *testing.T) {
	testgroup.RunInParallel(t, &FilesTests{})
}

type FilesTests struct {
}

func (g *FilesTests) createCommit(hash, author string, lines int, paths ...string) *Commit {
	files := map[string]int{}
	for _, p := range paths {
		files[p] = lines
	}

	return &Commit{
		Hash:       hash,
		Author:     author,
		AuthoredAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Parents:    []string{"p"},
		TotalLines: lines * len(paths),
		Files:      files,
	}
}

func (g *FilesTests) CreatesRecordOnFirstSighting(t *testgroup.T) {
	fs := NewFiles()

	t.Nil(fs.Get("a.go"))

	fs.Record("a.go", g.createCommit("c1", "a", 3, "a.go"), 3)

	f := fs.Get("a.go")
	t.NotNil(f)
	t.Equal("a.go", f.Path)
	t.Equal(1, f.CommitCount())
	t.Equal(1, f.AuthorCount())
	t.Equal(3, f.ChangedLines)
	t.Equal(1, fs.Len())
}

func (g *FilesTests) KeepsCommitsInTraversalOrder(t *testgroup.T) {
	fs := NewFiles()

	fs.Record("a.go", g.createCommit("c3", "a", 1, "a.go"), 1)
	fs.Record("a.go", g.createCommit("c2", "b", 1, "a.go"), 1)
	fs.Record("a.go", g.createCommit("c1", "a", 1, "a.go"), 1)

	f := fs.Get("a.go")
	t.Equal([]string{"c3", "c2", "c1"}, f.Commits)
	t.Len(f.AuthoredAt, 3)
}

func (g *FilesTests) CountsDistinctAuthors(t *testgroup.T) {
	fs := NewFiles()

	fs.Record("a.go", g.createCommit("c1", "b", 1, "a.go"), 1)
	fs.Record("a.go", g.createCommit("c2", "a", 1, "a.go"), 1)
	fs.Record("a.go", g.createCommit("c3", "b", 1, "a.go"), 1)

	f := fs.Get("a.go")
	t.Equal(3, f.CommitCount())
	t.Equal(2, f.AuthorCount())
	t.Equal([]string{"a", "b"}, f.ListAuthors())
	t.Equal(len(f.ListAuthors()), f.AuthorCount())
	t.Equal(2, f.CountCommitsBy("b"))
	t.Equal(1, f.CountCommitsBy("a"))
	t.Equal(0, f.CountCommitsBy("c"))
}

func (g *FilesTests) RiskIsCommitsTimesAuthors(t *testgroup.T) {
	fs := NewFiles()

	fs.Record("a.go", g.createCommit("c1", "a", 1, "a.go"), 1)
	t.Equal(1, fs.Get("a.go").Risk())

	fs.Record("a.go", g.createCommit("c2", "b", 1, "a.go"), 1)
	t.Equal(4, fs.Get("a.go").Risk())

	fs.Record("a.go", g.createCommit("c3", "b", 1, "a.go"), 1)
	t.Equal(6, fs.Get("a.go").Risk())

	fs.Record("a.go", g.createCommit("c4", "c", 1, "a.go"), 1)
	t.Equal(12, fs.Get("a.go").Risk())
}

func (g *FilesTests) RecordLargeOnlyTouchesLedger(t *testgroup.T) {
	fs := NewFiles()

	c := g.createCommit("c1", "a", 50, "a.go")
	fs.Record("a.go", c, 50)
	fs.RecordLarge("a.go", c, 50)

	f := fs.Get("a.go")
	t.Equal(map[string]int{"c1": 50}, f.LargeCommits)
	t.Equal(1, f.LargeCommitCount())
	t.Equal(1, f.CommitCount())
}

func (g *FilesTests) SnapshotIsIndependentOfLaterRecords(t *testgroup.T) {
	fs := NewFiles()

	fs.Record("a.go", g.createCommit("c1", "a", 1, "a.go"), 1)
	snapshot := fs.Snapshot()

	fs.Record("b.go", g.createCommit("c2", "a", 1, "b.go"), 1)

	t.Len(snapshot, 1)
	t.Contains(snapshot, "a.go")
	t.Equal(2, fs.Len())
}

func (g *FilesTests) FirstAndLastSeen(t *testgroup.T) {
	fs := NewFiles()

	c1 := g.createCommit("c1", "a", 1, "a.go")
	c1.AuthoredAt = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	c2 := g.createCommit("c2", "a", 1, "a.go")
	c2.AuthoredAt = time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	fs.Record("a.go", c1, 1)
	fs.Record("a.go", c2, 1)

	f := fs.Get("a.go")
	t.Equal(c2.AuthoredAt, f.FirstSeen())
	t.Equal(c1.AuthoredAt, f.LastSeen())
}
