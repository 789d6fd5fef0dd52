package history

import (
	"context"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/filters"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/utils"
)

type Walker struct {
	console consoles.Console
	opts    WalkOptions
}

type WalkOptions struct {
	// Progress receives a progress bar while walking. nil disables it.
	Progress io.Writer
}

// Result holds the state aggregated by one walk.
type Result struct {
	Head         string
	TotalCommits int
	MergeCommits int
	Files        *model.Files
	Authors      *model.Authors
}

func NewWalker(console consoles.Console, opts *WalkOptions) *Walker {
	result := &Walker{
		console: console,
	}
	if opts != nil {
		result.opts = *opts
	}
	return result
}

// Walk reads the history of params.Branch from source and aggregates the
// statistics of every non merge commit, up to params.Depth commits.
//
// Failing to resolve the branch or to read a commit aborts the walk with a
// RepositoryAccessError. A cancelled ctx aborts it with the context error.
func (w *Walker) Walk(ctx context.Context, source CommitSource, params *model.RunParameters) (*Result, error) {
	if params.Depth != nil && *params.Depth < 0 {
		return nil, model.NewConfigurationError("depth", "must not be negative: %v", *params.Depth)
	}

	exclude, err := filters.NewExclusionFilter(params.Exclude)
	if err != nil {
		return nil, err
	}

	w.console.Debugf("exclude=%v\n", strings.Join(exclude.Patterns(), " "))

	classifier := filters.NewCommitClassifier(params.LargeCommitLines)
	if !classifier.LargeCommitTracking() {
		w.console.Debugf("Large commit tracking disabled (large_commit_lines=%v)\n", params.LargeCommitLines)
	}

	head, err := source.Resolve(ctx, params.Branch)
	if err != nil {
		return nil, model.NewRepositoryAccessError(err, params.Path)
	}

	w.console.Printf("Walking %v (%v)...\n", params.Branch, head)

	bar, err := w.createProgressBar(ctx, source, head, params)
	if err != nil {
		return nil, err
	}

	commits, err := Commits(ctx, source, head, params.Depth)
	if err != nil {
		return nil, model.NewRepositoryAccessError(err, params.Path)
	}
	defer commits.Close()

	result := &Result{
		Head:    head,
		Files:   model.NewFiles(),
		Authors: model.NewAuthors(),
	}

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		commit, err := commits.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, model.NewRepositoryAccessError(err, params.Path)
		}

		if bar != nil {
			bar.Describe(commit.AuthoredAt.Format("2006-01-02 15"))
			_ = bar.Add(1)
		}

		if classifier.IsMerge(commit) {
			w.console.Debugf("Skipping merge commit %v\n", commit.Hash)
			result.MergeCommits++
			continue
		}

		w.process(result, commit, exclude, classifier)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	w.console.Printf("Walked %v commits (%v merges skipped), %v files, %v authors\n",
		humanize.Comma(int64(result.TotalCommits)), humanize.Comma(int64(result.MergeCommits)),
		humanize.Comma(int64(result.Files.Len())), humanize.Comma(int64(result.Authors.Len())))

	return result, nil
}

func (w *Walker) process(result *Result, commit *model.Commit, exclude *filters.ExclusionFilter, classifier *filters.CommitClassifier) {
	result.TotalCommits++
	result.Authors.Record(commit.Author)

	large := classifier.IsLarge(commit)

	for path, lines := range commit.Files {
		if exclude.Matches(path) {
			w.console.Debugf("Excluding %v\n", path)
			continue
		}

		result.Files.Record(path, commit, lines)

		if large {
			result.Files.RecordLarge(path, commit, commit.TotalLines)
		}
	}
}

func (w *Walker) createProgressBar(ctx context.Context, source CommitSource, head string, params *model.RunParameters) (*progressbar.ProgressBar, error) {
	if w.opts.Progress == nil {
		return nil, nil
	}

	total := -1
	if counter, ok := source.(CountingSource); ok {
		count, err := counter.Count(ctx, head, params.Depth)
		if err != nil {
			return nil, model.NewRepositoryAccessError(err, params.Path)
		}

		total = count
	}

	return utils.NewProgressBar(total, w.opts.Progress), nil
}

// Commits lists the commits reachable from head, newest first, stopping
// after limit commits. A nil limit lists all of them.
func Commits(ctx context.Context, source CommitSource, head string, limit *int) (CommitIter, error) {
	it, err := source.Log(ctx, head)
	if err != nil {
		return nil, errors.Wrapf(err, "error listing commits from %v", head)
	}

	if limit == nil {
		return it, nil
	}

	return &limitIter{it: it, left: *limit}, nil
}

type limitIter struct {
	it   CommitIter
	left int
}

func (i *limitIter) Next() (*model.Commit, error) {
	if i.left <= 0 {
		return nil, io.EOF
	}

	commit, err := i.it.Next()
	if err != nil {
		return nil, err
	}

	i.left--
	return commit, nil
}

func (i *limitIter) Close() {
	i.it.Close()
}
