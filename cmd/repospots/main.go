package main

import (
	"github.com/alecthomas/kong"

	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/workspace"
)

var cli struct {
	Debug bool `short:"d" help:"Print debug messages."`

	Analyze AnalyzeCmd `cmd:"" help:"Find the bugspots of a git repository."`
	Members MembersCmd `cmd:"" help:"List the files of a stored report that only the given members changed."`
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("repospots"),
		kong.Description("Find bugspots in git repositories."),
		kong.ShortUsageOnError(),
	)

	err := ctx.Run(&context{
		ws: workspace.NewWorkspace(consoles.NewStdErrConsole(cli.Debug)),
	})
	ctx.FatalIfErrorf(err)
}
