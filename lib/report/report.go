// Package report builds the canonical, serializable snapshot of an analysis run.
package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/iwata-n/repospots/lib/model"
)

// Report is the result of one analysis run. It is not changed after Build.
//
// Struct fields are declared in the lexicographic order of their json keys,
// so the serialized form has sorted keys at every level.
type Report struct {
	Parameter ParameterView `json:"parameter"`
	Result    ResultView    `json:"result"`
}

type ParameterView struct {
	Branch           string   `json:"branch"`
	Depth            *int     `json:"depth"`
	Exclude          []string `json:"exclude"`
	LargeCommitLines int      `json:"large_commit_lines"`
	Member           []string `json:"member"`
	Path             string   `json:"path"`
	Top              int      `json:"top"`
}

type ResultView struct {
	Authors      []string            `json:"authors"`
	Files        map[string]FileView `json:"files"`
	Head         string              `json:"head"`
	TotalCommits int                 `json:"total_commits"`
	TotalFiles   int                 `json:"total_files"`
}

type FileView struct {
	AuthorCount      int            `json:"author_count"`
	Authors          []string       `json:"authors"`
	CommitCount      int            `json:"commit_count"`
	LargeCommit      map[string]int `json:"large_commit"`
	LargeCommitCount int            `json:"large_commit_count"`
	Path             string         `json:"path"`
	Risk             int            `json:"risk"`
}

// Build assembles a report. It does not keep references to files or
// authorTotals.
func Build(params model.RunParameters, totalCommits int, files map[string]*model.FileRecord,
	authorTotals map[string]int, head string,
) *Report {
	authors := lo.Keys(authorTotals)
	sort.Strings(authors)

	return &Report{
		Parameter: NewParameterView(params),
		Result: ResultView{
			Authors: authors,
			Files: lo.MapValues(files, func(f *model.FileRecord, _ string) FileView {
				return NewFileView(f)
			}),
			Head:         head,
			TotalCommits: totalCommits,
			TotalFiles:   len(files),
		},
	}
}

func NewParameterView(p model.RunParameters) ParameterView {
	var depth *int
	if p.Depth != nil {
		d := *p.Depth
		depth = &d
	}

	return ParameterView{
		Branch:           p.Branch,
		Depth:            depth,
		Exclude:          copyList(p.Exclude),
		LargeCommitLines: p.LargeCommitLines,
		Member:           copyList(p.Member),
		Path:             p.Path,
		Top:              p.Top,
	}
}

func NewFileView(f *model.FileRecord) FileView {
	return FileView{
		AuthorCount:      f.AuthorCount(),
		Authors:          f.ListAuthors(),
		CommitCount:      f.CommitCount(),
		LargeCommit:      lo.Assign(f.LargeCommits),
		LargeCommitCount: f.LargeCommitCount(),
		Path:             f.Path,
		Risk:             f.Risk(),
	}
}

// ToRunParameters converts the parameters back, for consumers of stored reports.
func (p ParameterView) ToRunParameters() model.RunParameters {
	var depth *int
	if p.Depth != nil {
		d := *p.Depth
		depth = &d
	}

	return model.RunParameters{
		Path:             p.Path,
		Branch:           p.Branch,
		Depth:            depth,
		Exclude:          copyList(p.Exclude),
		LargeCommitLines: p.LargeCommitLines,
		Top:              p.Top,
		Member:           copyList(p.Member),
	}
}

func copyList(l []string) []string {
	return append(make([]string, 0, len(l)), l...)
}
