// Package members finds the files that only a given group of people has
// ever changed, based on a stored report.
package members

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/iwata-n/repospots/lib/report"
)

type Row struct {
	CommitCount int
	Path        string
	Authors     []string
}

// Analyze returns the files in allFiles that are in the report and whose
// authors are all members. Files that are no longer in the repository are
// ignored. Rows are sorted by commit count, descending, then by path.
func Analyze(files map[string]report.FileView, allFiles []string, members []string) []Row {
	ms := set.From(members)

	var result []Row
	for _, path := range lo.Uniq(allFiles) {
		data, ok := files[path]
		if !ok {
			continue
		}

		if !lo.EveryBy(data.Authors, ms.Contains) {
			continue
		}

		result = append(result, Row{
			CommitCount: data.CommitCount,
			Path:        data.Path,
			Authors:     data.Authors,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CommitCount != result[j].CommitCount {
			return result[i].CommitCount > result[j].CommitCount
		}
		return result[i].Path < result[j].Path
	})

	return result
}

func WriteCSV(w io.Writer, rows []Row) error {
	_, err := fmt.Fprintln(w, "commit_count, path, authors")
	if err != nil {
		return err
	}

	for _, r := range rows {
		_, err = fmt.Fprintf(w, "%v,%v,%v\n", r.CommitCount, r.Path, strings.Join(r.Authors, " "))
		if err != nil {
			return err
		}
	}

	return nil
}
