package workspace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bloomberg/go-testgroup"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/members"
	"github.com/iwata-n/repospots/lib/model"
)

func TestWorkspace(t *testing.T) {
	testgroup.RunInParallel(t, &WorkspaceTests{})
}

type WorkspaceTests struct {
}

// createRepo commits x.go (alice, 50 lines), then x.go and y.go (bob, 5
// lines), then a merge of both by carol, then removes y.go (alice).
func (g *WorkspaceTests) createRepo(t *testgroup.T) (string, map[string]plumbing.Hash) {
	dir := t.TempDir()

	gitRepo, err := git.PlainInit(dir, false)
	t.Require.NoError(err)

	wt, err := gitRepo.Worktree()
	t.Require.NoError(err)

	lines := func(n int, prefix string) string {
		result := ""
		for i := 0; i < n; i++ {
			result += prefix + "\n"
		}
		return result
	}

	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	commit := func(author string, parents []plumbing.Hash, files map[string]string) plumbing.Hash {
		for name, contents := range files {
			if contents == "" {
				_, err := wt.Remove(name)
				t.Require.NoError(err)
				continue
			}

			t.Require.NoError(os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
			_, err := wt.Add(name)
			t.Require.NoError(err)
		}

		when = when.Add(time.Hour)
		hash, err := wt.Commit("commit by "+author, &git.CommitOptions{
			Author:  &object.Signature{Name: author, Email: author + "@example.com", When: when},
			Parents: parents,
		})
		t.Require.NoError(err)
		return hash
	}

	xs := lines(50, "x")
	c1 := commit("alice", nil, map[string]string{"x.go": xs})
	c2 := commit("bob", nil, map[string]string{"x.go": lines(48, "x") + "b\nb\n", "y.go": "y\n"})
	c3 := commit("carol", []plumbing.Hash{c2, c1}, map[string]string{"x.go": xs})
	c4 := commit("alice", nil, map[string]string{"y.go": ""})

	return dir, map[string]plumbing.Hash{"c1": c1, "c2": c2, "c3": c3, "c4": c4}
}

func (g *WorkspaceTests) Analyze(t *testgroup.T) {
	dir, hashes := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{
		Path:             dir,
		Branch:           "HEAD",
		LargeCommitLines: 10,
	}, nil)
	t.Require.NoError(err)

	t.Equal(hashes["c4"].String(), r.Result.Head)
	t.Equal(3, r.Result.TotalCommits)
	t.Equal(2, r.Result.TotalFiles)
	t.Equal([]string{"alice", "bob"}, r.Result.Authors)

	x := r.Result.Files["x.go"]
	t.Equal(2, x.CommitCount)
	t.Equal(2, x.AuthorCount)
	t.Equal(4, x.Risk)
	t.Equal(map[string]int{hashes["c1"].String(): 50}, x.LargeCommit)

	y := r.Result.Files["y.go"]
	t.Equal(2, y.CommitCount)
	t.Equal([]string{"alice", "bob"}, y.Authors)
}

func (g *WorkspaceTests) AnalyzeWithDepth(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	depth := 2
	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD", Depth: &depth}, nil)
	t.Require.NoError(err)

	t.Equal(1, r.Result.TotalCommits)
	t.Equal([]string{"alice"}, r.Result.Authors)
}

func (g *WorkspaceTests) AnalyzeNotARepository(t *testgroup.T) {
	ws := NewWorkspace(consoles.NewNullConsole())

	_, err := ws.Analyze(context.Background(), model.RunParameters{Path: t.TempDir(), Branch: "HEAD"}, nil)

	t.True(model.IsRepositoryAccessError(err))
}

func (g *WorkspaceTests) AnalyzeUnknownBranch(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	_, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "no-such-branch"}, nil)

	t.True(model.IsRepositoryAccessError(err))
}

func (g *WorkspaceTests) AnalyzeInvalidExclude(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	_, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD", Exclude: []string{"[x"}}, nil)

	t.True(model.IsConfigurationError(err))
}

func (g *WorkspaceTests) StoreAndLoad(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD"}, nil)
	t.Require.NoError(err)

	out := t.TempDir()
	for _, name := range []string{"result.json", "archive/result.sqlite"} {
		destination := filepath.Join(out, name)

		t.Require.NoError(ws.Store(r, destination))

		loaded, err := ws.Load(destination)
		t.Require.NoError(err)
		t.Equal(r, loaded)
	}
}

func (g *WorkspaceTests) StoreToMissingDir(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD"}, nil)
	t.Require.NoError(err)

	err = ws.Store(r, filepath.Join(t.TempDir(), "none", "result.json"))

	t.True(model.IsReportWriteError(err))
}

func (g *WorkspaceTests) Members(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD"}, nil)
	t.Require.NoError(err)

	result := filepath.Join(t.TempDir(), "result.json")
	t.Require.NoError(ws.Store(r, result))

	rows, err := ws.Members(context.Background(), result, []string{"alice", "bob"})
	t.Require.NoError(err)
	t.Equal([]members.Row{{CommitCount: 2, Path: "x.go", Authors: []string{"alice", "bob"}}}, rows)

	rows, err = ws.Members(context.Background(), result, []string{"alice"})
	t.Require.NoError(err)
	t.Empty(rows)
}

func (g *WorkspaceTests) StoreInMemoryFails(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD"}, nil)
	t.Require.NoError(err)

	err = ws.Store(r, ":memory:")

	t.True(model.IsReportWriteError(err))
}

func (g *WorkspaceTests) MembersFromReport(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	ws := NewWorkspace(consoles.NewNullConsole())

	r, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD", Member: []string{"alice", "bob"}}, nil)
	t.Require.NoError(err)

	result := filepath.Join(t.TempDir(), "result.json")
	t.Require.NoError(ws.Store(r, result))

	rows, err := ws.Members(context.Background(), result, nil)
	t.Require.NoError(err)
	t.Equal([]members.Row{{CommitCount: 2, Path: "x.go", Authors: []string{"alice", "bob"}}}, rows)
}

func (g *WorkspaceTests) AnalyzeDescribesTopFiles(t *testgroup.T) {
	dir, _ := g.createRepo(t)
	out := &bytes.Buffer{}
	ws := NewWorkspace(consoles.NewWriterConsole(out, true))

	_, err := ws.Analyze(context.Background(), model.RunParameters{Path: dir, Branch: "HEAD", Top: 1}, nil)
	t.Require.NoError(err)

	t.Contains(out.String(), "x.go: 54 changed lines, first 2024-03-01, last 2024-03-01, commits by alice=1 bob=1\n")
	t.NotContains(out.String(), "y.go: ")
}
