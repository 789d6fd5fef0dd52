package filters

// PathFilter returns true when it matches the repository relative path.
type PathFilter func(path string) bool

func anyPathFilter(fs []PathFilter) PathFilter {
	return func(path string) bool {
		for _, f := range fs {
			if f(path) {
				return true
			}
		}
		return false
	}
}
