package filters

import (
	"github.com/iwata-n/repospots/lib/model"
)

// ExclusionFilter decides which changed paths are left out of the statistics.
//
// A path is excluded when any of the patterns match it or when it is in
// rename notation. With no patterns only renames are excluded.
type ExclusionFilter struct {
	patterns []string
	matches  PathFilter
}

func NewExclusionFilter(patterns []string) (*ExclusionFilter, error) {
	fs, err := ParsePathFilterList(patterns)
	if err != nil {
		return nil, model.WrapConfigurationError(err, "exclude")
	}

	return &ExclusionFilter{
		patterns: append([]string(nil), patterns...),
		matches:  anyPathFilter(fs),
	}, nil
}

func (e *ExclusionFilter) Matches(path string) bool {
	return IsRename(path) || e.matches(path)
}

func (e *ExclusionFilter) Patterns() []string {
	return append([]string(nil), e.patterns...)
}

// Matches reports if path is excluded by patterns. Invalid patterns never match.
func Matches(path string, patterns []string) bool {
	if IsRename(path) {
		return true
	}

	for _, p := range patterns {
		f, err := ParsePathFilter(p)
		if err == nil && f(path) {
			return true
		}
	}

	return false
}

// ValidatePatterns returns a ConfigurationError for the first malformed pattern.
func ValidatePatterns(patterns []string) error {
	_, err := ParsePathFilterList(patterns)
	return model.WrapConfigurationError(err, "exclude")
}
