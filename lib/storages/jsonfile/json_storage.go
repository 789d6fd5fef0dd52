// Package jsonfile stores reports as canonical json files.
package jsonfile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/report"
	"github.com/iwata-n/repospots/lib/storages"
)

const filePerm = 0o644

type jsonStorage struct {
	path string
}

func NewJsonStorage(path string) (storages.Storage, error) {
	return &jsonStorage{
		path: path,
	}, nil
}

func (s *jsonStorage) WriteReport(r *report.Report) error {
	data, err := report.Serialize(r)
	if err != nil {
		return model.NewReportWriteError(err, s.path)
	}

	err = WriteFileAtomic(s.path, data)
	if err != nil {
		return model.NewReportWriteError(err, s.path)
	}

	return nil
}

func (s *jsonStorage) LoadReport() (*report.Report, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading report %v", s.path)
	}

	return report.Deserialize(data)
}

func (s *jsonStorage) Close() error {
	return nil
}

// WriteFileAtomic writes data to a temporary file in the same directory as
// path and renames it over path. If anything fails the temporary file is
// removed and path is left as it was.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "error creating temporary file")
	}

	tmpPath := tmp.Name()
	closed := false

	defer func() {
		if err == nil {
			return
		}

		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpPath)
	}()

	_, err = tmp.Write(data)
	if err != nil {
		return errors.Wrap(err, "error writing temporary file")
	}

	err = tmp.Sync()
	if err != nil {
		return errors.Wrap(err, "error syncing temporary file")
	}

	closed = true
	err = tmp.Close()
	if err != nil {
		return errors.Wrap(err, "error closing temporary file")
	}

	err = os.Chmod(tmpPath, filePerm)
	if err != nil {
		return errors.Wrap(err, "error setting permissions")
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		return errors.Wrap(err, "error renaming temporary file")
	}

	return nil
}
