package main

import (
	"strings"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"

	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/report"
)

func printParameters(console consoles.Console, params *model.RunParameters) {
	depth := "unlimited"
	if !params.Unbounded() {
		depth = humanize.Comma(int64(*params.Depth))
	}

	console.Debugf("path=%v\n", params.Path)
	console.Debugf("branch=%v\n", params.Branch)
	console.Debugf("depth=%v\n", depth)
	console.Debugf("large_commit_lines=%v\n", params.LargeCommitLines)
	console.Debugf("top=%v\n", params.Top)
	console.Debugf("member=%v\n", strings.Join(params.Member, " "))
}

const maxPathLen = 80

func printSummary(console consoles.Console, r *report.Report, top int) {
	console.Printf("Head %v: %v, %v, %v\n",
		shortHash(r.Result.Head),
		count(r.Result.TotalCommits, "commit"),
		count(r.Result.TotalFiles, "file"),
		count(len(r.Result.Authors), "author"))

	printRanking(console, "Order by risk", r.TopByRisk(top), func(f report.FileView) int { return f.Risk })
	printRanking(console, "Order by number of authors", r.TopByAuthors(top), func(f report.FileView) int { return f.AuthorCount })
	printRanking(console, "Order by commit count", r.TopByCommits(top), func(f report.FileView) int { return f.CommitCount })
}

func printRanking(console consoles.Console, title string, files []report.FileView, value func(report.FileView) int) {
	if len(files) == 0 {
		return
	}

	console.Printf("%v:\n", title)
	console.PushPrefix("   ")
	defer console.PopPrefix()

	for i, f := range files {
		console.Printf("%v %v %v (%v)\n", humanize.Ordinal(i+1),
			truncate.Truncate(f.Path, maxPathLen, "...", truncate.PositionMiddle),
			humanize.Comma(int64(value(f))), strings.Join(f.Authors, ", "))
	}
}

var plurals = pluralize.NewClient()

func count(n int, word string) string {
	return humanize.Comma(int64(n)) + " " + plurals.Pluralize(word, n, false)
}

func shortHash(hash string) string {
	if len(hash) > 10 {
		return hash[:10]
	}
	return hash
}
