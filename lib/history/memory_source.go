package history

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/utils"
)

// MemorySource is a CommitSource over commits held in memory. Branches map
// a name to the index of their head commit; commits are listed from there
// to the end of the slice.
type MemorySource struct {
	commits  []*model.Commit
	branches map[string]int
}

// NewMemorySource creates a source with commits newest first. The branch
// HEAD points to the first commit.
func NewMemorySource(commits ...*model.Commit) *MemorySource {
	return &MemorySource{
		commits:  commits,
		branches: map[string]int{"HEAD": 0},
	}
}

func (s *MemorySource) SetBranch(name string, hash string) error {
	for i, c := range s.commits {
		if c.Hash == hash {
			s.branches[name] = i
			return nil
		}
	}

	return errors.Errorf("unknown commit: %v", hash)
}

func (s *MemorySource) Resolve(_ context.Context, branch string) (string, error) {
	branch = utils.Coalesce(branch, "HEAD")

	i, ok := s.branches[branch]
	if !ok || i >= len(s.commits) {
		return "", errors.Errorf("no branch found with name: %v", branch)
	}

	return s.commits[i].Hash, nil
}

func (s *MemorySource) Log(_ context.Context, head string) (CommitIter, error) {
	for i, c := range s.commits {
		if c.Hash == head {
			return &sliceIter{commits: s.commits[i:]}, nil
		}
	}

	return nil, errors.Errorf("unknown commit: %v", head)
}

func (s *MemorySource) Count(ctx context.Context, head string, limit *int) (int, error) {
	it, err := s.Log(ctx, head)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	result := len(it.(*sliceIter).commits)
	if limit != nil && *limit < result {
		result = *limit
	}
	return result, nil
}

type sliceIter struct {
	commits []*model.Commit
	next    int
}

func (i *sliceIter) Next() (*model.Commit, error) {
	if i.next >= len(i.commits) {
		return nil, io.EOF
	}

	result := i.commits[i.next]
	i.next++
	return result, nil
}

func (i *sliceIter) Close() {
	i.next = len(i.commits)
}
