package model

import (
	"sort"

	"github.com/samber/lo"
)

type AuthorRecord struct {
	Name    string
	Commits int
}

// Authors counts non merge commits per author name.
type Authors struct {
	authorsByName map[string]*AuthorRecord
}

func NewAuthors() *Authors {
	return &Authors{
		authorsByName: map[string]*AuthorRecord{},
	}
}

func (as *Authors) Record(name string) {
	author, ok := as.authorsByName[name]

	if !ok {
		author = &AuthorRecord{Name: name}
		as.authorsByName[name] = author
	}

	author.Commits++
}

func (as *Authors) Get(name string) *AuthorRecord {
	return as.authorsByName[name]
}

func (as *Authors) Len() int {
	return len(as.authorsByName)
}

func (as *Authors) Totals() map[string]int {
	return lo.MapValues(as.authorsByName, func(a *AuthorRecord, _ string) int {
		return a.Commits
	})
}

func (as *Authors) ListNames() []string {
	result := lo.Keys(as.authorsByName)
	sort.Strings(result)
	return result
}
