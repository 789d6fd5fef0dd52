package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/iwata-n/repospots/lib/config"
	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/history"
	"github.com/iwata-n/repospots/lib/history/git"
	"github.com/iwata-n/repospots/lib/members"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/report"
	"github.com/iwata-n/repospots/lib/storages"
	"github.com/iwata-n/repospots/lib/storages/jsonfile"
	"github.com/iwata-n/repospots/lib/storages/orm"
	"github.com/iwata-n/repospots/lib/utils"
)

const dateFormat = "2006-01-02"

type Workspace struct {
	console consoles.Console
}

type AnalyzeOptions struct {
	Progress io.Writer
}

func NewWorkspace(console consoles.Console) *Workspace {
	return &Workspace{
		console: console,
	}
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

// Analyze walks the repository at params.Path and builds the report.
func (w *Workspace) Analyze(ctx context.Context, params model.RunParameters, opts *AnalyzeOptions) (*report.Report, error) {
	err := config.Validate(&params)
	if err != nil {
		return nil, err
	}

	source, err := git.Open(params.Path)
	if err != nil {
		return nil, err
	}

	walkOpts := &history.WalkOptions{}
	if opts != nil {
		walkOpts.Progress = opts.Progress
	}

	w.console.PushPrefix("git %v: ", filepath.Base(source.RootDir()))
	defer w.console.PopPrefix()

	result, err := history.NewWalker(w.console, walkOpts).Walk(ctx, source, &params)
	if err != nil {
		return nil, err
	}

	r := report.Build(params, result.TotalCommits, result.Files.Snapshot(), result.Authors.Totals(), result.Head)

	for _, f := range r.TopByRisk(params.Top) {
		w.console.Debugf("%v\n", describeFile(result.Files.Get(f.Path)))
	}

	return r, nil
}

// describeFile renders the details of a file that are not part of the report.
func describeFile(f *model.FileRecord) string {
	authors := lo.Map(f.ListAuthors(), func(a string, _ int) string {
		return fmt.Sprintf("%v=%v", a, f.CountCommitsBy(a))
	})

	return fmt.Sprintf("%v: %v changed lines, first %v, last %v, commits by %v",
		f.Path, humanize.Comma(int64(f.ChangedLines)),
		f.FirstSeen().Format(dateFormat), f.LastSeen().Format(dateFormat),
		strings.Join(authors, " "))
}

// Store writes r to destination. Files ending in .sqlite or .db
// are archived in a database, anything else is written as a JSON file.
func (w *Workspace) Store(r *report.Report, destination string) error {
	storage, err := w.openStorage(destination)
	if err != nil {
		return err
	}
	defer storage.Close()

	return storage.WriteReport(r)
}

// Load reads a stored report. For databases, the last archived run is returned.
func (w *Workspace) Load(source string) (*report.Report, error) {
	storage, err := w.openStorage(source)
	if err != nil {
		return nil, err
	}
	defer storage.Close()

	return storage.LoadReport()
}

// Members lists the files of the repository analyzed in the stored report
// that were only changed by the given members. With no ms, the members
// stored in the report are used.
func (w *Workspace) Members(ctx context.Context, source string, ms []string) ([]members.Row, error) {
	r, err := w.Load(source)
	if err != nil {
		return nil, err
	}

	params := r.Parameter.ToRunParameters()
	if len(ms) == 0 {
		ms = params.Member
	}

	w.console.Debugf("head=%v\n", r.Result.Head)
	for _, m := range ms {
		w.console.Debugf("member=%v\n", m)
	}

	repo, err := git.Open(params.Path)
	if err != nil {
		return nil, err
	}

	files, err := repo.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	return members.Analyze(r.Result.Files, files, ms), nil
}

func (w *Workspace) openStorage(destination string) (storages.Storage, error) {
	switch {
	case destination == ":memory:":
		return nil, model.NewReportWriteError(errors.New("in memory databases do not keep reports"), destination)

	case strings.HasSuffix(destination, ".sqlite"), strings.HasSuffix(destination, ".db"):
		file, err := utils.PathAbs(destination)
		if err != nil {
			return nil, model.NewReportWriteError(err, destination)
		}

		err = w.createStorageDir(file)
		if err != nil {
			return nil, model.NewReportWriteError(err, destination)
		}

		return orm.NewGormStorage(orm.WithSqlite(file), destination, w.console)

	default:
		file, err := utils.PathAbs(destination)
		if err != nil {
			return nil, model.NewReportWriteError(err, destination)
		}

		return jsonfile.NewJsonStorage(file)
	}
}

func (w *Workspace) createStorageDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		w.console.Printf("Creating archive dir at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}
