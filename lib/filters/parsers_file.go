package filters

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// bracedRenameRE matches the git --stat rename notation inside a path, like src/{a.go => b.go}.
var bracedRenameRE = regexp.MustCompile(`\{[^{}]* => [^{}]*\}`)

func ParsePathFilter(rule string) (PathFilter, error) {
	if rule == "" {
		return nil, errors.New("empty file glob")
	}

	if !doublestar.ValidatePattern(rule) {
		return nil, errors.Errorf("invalid file glob: %v", rule)
	}

	return func(path string) bool {
		m, err := doublestar.Match(rule, path)
		return err == nil && m
	}, nil
}

func ParsePathFilterList(rules []string) ([]PathFilter, error) {
	result := make([]PathFilter, 0, len(rules))

	for _, rule := range rules {
		f, err := ParsePathFilter(rule)
		if err != nil {
			return nil, err
		}

		result = append(result, f)
	}

	return result, nil
}

// IsRename returns true for paths in rename notation. Both the braced form
// (dir/{old => new}/file) and the plain form used by go-git stats
// (old => new) are recognized.
func IsRename(path string) bool {
	return bracedRenameRE.MatchString(path) || strings.Contains(path, " => ")
}
