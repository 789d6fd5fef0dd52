package report

import (
	"sort"

	"github.com/samber/lo"
)

// TopByRisk returns up to n files ranked by risk. n <= 0 returns all files.
func (r *Report) TopByRisk(n int) []FileView {
	return r.top(n, func(a, b FileView) int {
		return compareInts(a.Risk, b.Risk)
	})
}

func (r *Report) TopByAuthors(n int) []FileView {
	return r.top(n, func(a, b FileView) int {
		return compareInts(a.AuthorCount, b.AuthorCount)
	})
}

func (r *Report) TopByCommits(n int) []FileView {
	return r.top(n, func(a, b FileView) int {
		return compareInts(a.CommitCount, b.CommitCount)
	})
}

// top sorts by cmp descending. Ties are broken by path so the order is stable.
func (r *Report) top(n int, cmp func(a, b FileView) int) []FileView {
	result := lo.Values(r.Result.Files)

	sort.Slice(result, func(i, j int) bool {
		c := cmp(result[i], result[j])
		if c != 0 {
			return c > 0
		}
		return result[i].Path < result[j].Path
	})

	if n > 0 && n < len(result) {
		result = result[:n]
	}

	return result
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
