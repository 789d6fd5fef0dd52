package members

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwata-n/repospots/lib/report"
)

func testFiles() map[string]report.FileView {
	return map[string]report.FileView{
		"a.go": {Path: "a.go", CommitCount: 3, Authors: []string{"alice"}},
		"b.go": {Path: "b.go", CommitCount: 5, Authors: []string{"alice", "bob"}},
		"c.go": {Path: "c.go", CommitCount: 9, Authors: []string{"alice", "carol"}},
		"d.go": {Path: "d.go", CommitCount: 3, Authors: []string{"bob"}},
		"gone": {Path: "gone", CommitCount: 20, Authors: []string{"alice"}},
	}
}

func TestAnalyzeOnlyMembers(t *testing.T) {
	t.Parallel()

	rows := Analyze(testFiles(),
		[]string{"a.go", "b.go", "c.go", "d.go", "new.go"},
		[]string{"alice", "bob"})

	assert.Equal(t, []Row{
		{CommitCount: 5, Path: "b.go", Authors: []string{"alice", "bob"}},
		{CommitCount: 3, Path: "a.go", Authors: []string{"alice"}},
		{CommitCount: 3, Path: "d.go", Authors: []string{"bob"}},
	}, rows)
}

func TestAnalyzeNoMembers(t *testing.T) {
	t.Parallel()

	rows := Analyze(testFiles(), []string{"a.go", "b.go"}, nil)

	assert.Empty(t, rows)
}

func TestAnalyzeIgnoresDuplicatedPaths(t *testing.T) {
	t.Parallel()

	rows := Analyze(testFiles(), []string{"a.go", "a.go"}, []string{"alice"})

	assert.Len(t, rows, 1)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := WriteCSV(out, []Row{
		{CommitCount: 5, Path: "b.go", Authors: []string{"alice", "bob"}},
		{CommitCount: 3, Path: "a.go", Authors: []string{"alice"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "commit_count, path, authors\n5,b.go,alice bob\n3,a.go,alice\n", out.String())
}
