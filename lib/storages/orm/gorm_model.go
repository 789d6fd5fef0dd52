package orm

import (
	"time"

	"github.com/iwata-n/repospots/lib/report"
)

type sqlRun struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`

	Path             string `gorm:"index"`
	Branch           string
	Depth            *int
	Exclude          []string `gorm:"serializer:json"`
	LargeCommitLines int
	Member           []string `gorm:"serializer:json"`
	Top              int

	Head         string
	TotalCommits int
	TotalFiles   int
	Authors      []string `gorm:"serializer:json"`

	// Report is the canonical serialized report.
	Report string

	Files []sqlRunFile `gorm:"foreignKey:RunID"`

	CreatedAt time.Time
}

type sqlRunFile struct {
	RunID uint   `gorm:"primaryKey"`
	Path  string `gorm:"primaryKey"`

	CommitCount      int
	AuthorCount      int
	LargeCommitCount int
	Risk             int      `gorm:"index"`
	Authors          []string `gorm:"serializer:json"`
}

func newSqlRun(name string, r *report.Report, serialized []byte) *sqlRun {
	p := r.Parameter

	return &sqlRun{
		Name:             name,
		Path:             p.Path,
		Branch:           p.Branch,
		Depth:            p.Depth,
		Exclude:          p.Exclude,
		LargeCommitLines: p.LargeCommitLines,
		Member:           p.Member,
		Top:              p.Top,
		Head:             r.Result.Head,
		TotalCommits:     r.Result.TotalCommits,
		TotalFiles:       r.Result.TotalFiles,
		Authors:          r.Result.Authors,
		Report:           string(serialized),
	}
}

func newSqlRunFile(runID uint, f report.FileView) *sqlRunFile {
	return &sqlRunFile{
		RunID:            runID,
		Path:             f.Path,
		CommitCount:      f.CommitCount,
		AuthorCount:      f.AuthorCount,
		LargeCommitCount: f.LargeCommitCount,
		Risk:             f.Risk,
		Authors:          f.Authors,
	}
}
