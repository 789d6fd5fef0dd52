package model

import (
	"github.com/samber/lo"
)

// Files aggregates per file statistics during a history walk.
//
// It only grows: there is no way to remove a record or a commit from one.
// It is not safe for concurrent use.
type Files struct {
	filesByPath map[string]*FileRecord
}

func NewFiles() *Files {
	return &Files{
		filesByPath: map[string]*FileRecord{},
	}
}

func (fs *Files) getOrCreate(path string) *FileRecord {
	result, ok := fs.filesByPath[path]

	if !ok {
		result = NewFileRecord(path)
		fs.filesByPath[path] = result
	}

	return result
}

// Record adds a non merge commit to the file at path. The caller is
// responsible for excluding paths before calling it.
func (fs *Files) Record(path string, commit *Commit, changedLines int) {
	fs.getOrCreate(path).add(commit, changedLines)
}

// RecordLarge marks commit as a large commit for the file at path.
func (fs *Files) RecordLarge(path string, commit *Commit, changedLines int) {
	fs.getOrCreate(path).addLarge(commit, changedLines)
}

func (fs *Files) Get(path string) *FileRecord {
	return fs.filesByPath[path]
}

func (fs *Files) Len() int {
	return len(fs.filesByPath)
}

func (fs *Files) List() []*FileRecord {
	return lo.Values(fs.filesByPath)
}

// Snapshot returns a copy of the path index. Records must not be changed
// after the walk that produced them finished.
func (fs *Files) Snapshot() map[string]*FileRecord {
	return lo.Assign(fs.filesByPath)
}
