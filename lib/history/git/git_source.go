// Package git reads commit history from git repositories using go-git.
package git

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/iwata-n/repospots/lib/history"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/utils"
)

// Source is a history.CommitSource backed by a git repository on disk.
type Source struct {
	rootDir string
	gitRepo *git.Repository
}

var _ history.CommitSource = (*Source)(nil)
var _ history.CountingSource = (*Source)(nil)

// Open opens the repository at path or at any of its parents. Errors are
// returned as RepositoryAccessError.
func Open(path string) (*Source, error) {
	rootDir, err := utils.PathAbs(path)
	if err != nil {
		return nil, model.NewRepositoryAccessError(err, path)
	}

	gitRepo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, model.NewRepositoryAccessError(errors.Wrap(err, "not a git repository"), path)
	}

	return &Source{
		rootDir: rootDir,
		gitRepo: gitRepo,
	}, nil
}

func (s *Source) RootDir() string {
	return s.rootDir
}

// Resolve accepts any revision git understands. A comma separated list is
// tried in order, so "main,master" works for repositories using either one.
func (s *Source) Resolve(_ context.Context, branch string) (string, error) {
	if branch == "" || branch == "HEAD" {
		gitHead, err := s.gitRepo.Head()
		if err != nil {
			return "", errors.Wrap(err, "error resolving HEAD")
		}

		return gitHead.Hash().String(), nil
	}

	for _, candidate := range strings.Split(branch, ",") {
		revision, err := s.gitRepo.ResolveRevision(plumbing.Revision(strings.TrimSpace(candidate)))
		if err == nil {
			return revision.String(), nil
		}
	}

	return "", errors.Errorf("no branch found with name: %v", branch)
}

func (s *Source) Log(ctx context.Context, head string) (history.CommitIter, error) {
	commitsIter, err := s.log(head)
	if err != nil {
		return nil, err
	}

	return &commitIter{ctx: ctx, it: commitsIter}, nil
}

func (s *Source) Count(_ context.Context, head string, limit *int) (int, error) {
	commitsIter, err := s.log(head)
	if err != nil {
		return 0, err
	}
	defer commitsIter.Close()

	result := 0
	err = commitsIter.ForEach(func(gitCommit *object.Commit) error {
		if limit != nil && result >= *limit {
			return storer.ErrStop
		}

		result++
		return nil
	})
	if err != nil {
		return 0, err
	}

	return result, nil
}

// ListFiles returns the paths of all files in the tree of HEAD, sorted.
func (s *Source) ListFiles(_ context.Context) ([]string, error) {
	gitHead, err := s.gitRepo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "error resolving HEAD")
	}

	gitCommit, err := s.gitRepo.CommitObject(gitHead.Hash())
	if err != nil {
		return nil, err
	}

	gitTree, err := gitCommit.Tree()
	if err != nil {
		return nil, err
	}

	var result []string
	err = gitTree.Files().ForEach(func(gitFile *object.File) error {
		result = append(result, gitFile.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Source) log(head string) (object.CommitIter, error) {
	if !plumbing.IsHash(head) {
		return nil, errors.Errorf("invalid commit hash: %v", head)
	}

	return s.gitRepo.Log(&git.LogOptions{
		From:  plumbing.NewHash(head),
		Order: git.LogOrderCommitterTime,
	})
}

type commitIter struct {
	ctx context.Context
	it  object.CommitIter
}

func (i *commitIter) Next() (*model.Commit, error) {
	gitCommit, err := i.it.Next()
	if err != nil {
		return nil, err
	}

	return toCommit(i.ctx, gitCommit)
}

func (i *commitIter) Close() {
	i.it.Close()
}

// toCommit converts a go-git commit. Merge commits are returned without
// file stats because they are never aggregated.
func toCommit(ctx context.Context, gitCommit *object.Commit) (*model.Commit, error) {
	result := &model.Commit{
		Hash:       gitCommit.Hash.String(),
		Author:     gitCommit.Author.Name,
		AuthoredAt: gitCommit.Author.When,
		Parents: lo.Map(gitCommit.ParentHashes, func(h plumbing.Hash, _ int) string {
			return h.String()
		}),
		Files: map[string]int{},
	}

	if gitCommit.NumParents() > 1 {
		return result, nil
	}

	stats, err := gitCommit.StatsContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "error computing stats of commit %v", result.Hash)
	}

	for _, stat := range stats {
		lines := stat.Addition + stat.Deletion
		result.Files[stat.Name] += lines
		result.TotalLines += lines
	}

	return result, nil
}
