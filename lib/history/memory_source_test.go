package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwata-n/repospots/lib/model"
)

func TestMemorySourceBranches(t *testing.T) {
	t.Parallel()

	s := NewMemorySource(&model.Commit{Hash: "c2"}, &model.Commit{Hash: "c1"})
	require.NoError(t, s.SetBranch("old", "c1"))
	assert.Error(t, s.SetBranch("x", "c0"))

	head, err := s.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "c2", head)

	head, err = s.Resolve(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, "c1", head)

	_, err = s.Resolve(context.Background(), "missing")
	assert.Error(t, err)

	count, err := s.Count(context.Background(), "c2", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	limit := 1
	count, err = s.Count(context.Background(), "c2", &limit)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemorySourceEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewMemorySource().Resolve(context.Background(), "HEAD")
	assert.Error(t, err)
}
