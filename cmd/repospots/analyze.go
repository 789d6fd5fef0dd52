package main

import (
	gocontext "context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/iwata-n/repospots/lib/config"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/report"
	"github.com/iwata-n/repospots/lib/workspace"
)

type AnalyzeCmd struct {
	Path             string   `arg:"" optional:"" default:"." help:"Repository path." type:"path"`
	Branch           string   `default:"HEAD" help:"Branch to walk. Accepts a comma separated list of candidates."`
	Depth            int      `default:"-1" help:"Max number of commits to read. Negative means no limit."`
	Exclude          []string `sep:"none" help:"Glob of files to ignore. Can be repeated."`
	LargeCommitLines int      `default:"0" help:"Commits changing more lines than this are tracked as large. 0 disables it."`
	Top              int      `default:"10" help:"Number of files to show in each ranking. 0 shows all."`
	Member           []string `sep:"none" help:"Member names stored in the report. Can be repeated."`
	Config           string   `short:"c" help:"YAML config file. Its values replace the ones in the arguments." type:"existingfile"`
	Output           string   `short:"o" help:"Where to store the report. Files ending in .sqlite or .db are archived in a database. Default is stdout." type:"path"`
	Summary          bool     `default:"true" negatable:"" help:"Print a summary to stderr."`
}

func (c *AnalyzeCmd) Run(ctx *context) error {
	var file *config.File
	if c.Config != "" {
		var err error
		file, err = config.Load(c.Config)
		if err != nil {
			return err
		}
	}

	params, err := config.Resolve(model.RunParameters{
		Path:             c.Path,
		Branch:           c.Branch,
		Depth:            toDepth(c.Depth),
		Exclude:          c.Exclude,
		LargeCommitLines: c.LargeCommitLines,
		Top:              c.Top,
		Member:           c.Member,
	}, file)
	if err != nil {
		return err
	}

	console := ctx.ws.Console()
	printParameters(console, &params)

	r, err := ctx.ws.Analyze(gocontext.Background(), params, &workspace.AnalyzeOptions{
		Progress: os.Stderr,
	})
	if err != nil {
		return err
	}

	if c.Summary {
		printSummary(console, r, params.Top)
	}

	return storeReport(ctx.ws, r, c.Output, os.Stdout)
}

// storeReport writes r to output, or to stdout when output is empty. When
// output can not be written, r goes to stdout and the write error is
// returned anyway.
func storeReport(ws *workspace.Workspace, r *report.Report, output string, stdout io.Writer) error {
	if output == "" {
		return writeReport(stdout, r)
	}

	console := ws.Console()

	err := ws.Store(r, output)
	if model.IsReportWriteError(err) {
		console.Printf("Could not store report, writing it to stdout\n")
		werr := writeReport(stdout, r)
		if werr != nil {
			console.Printf("Could not write report to stdout: %v\n", werr)
			return errors.Wrapf(err, "report also not written to stdout (%v)", werr)
		}
		return err
	}
	if err != nil {
		return err
	}

	console.Printf("Report written to %v\n", output)
	return nil
}

func writeReport(out io.Writer, r *report.Report) error {
	data, err := report.Serialize(r)
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}

func toDepth(depth int) *int {
	if depth < 0 {
		return nil
	}
	return &depth
}
