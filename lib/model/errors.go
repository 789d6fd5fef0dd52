package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError means the run parameters are missing or invalid. It is
// reported before any commit is read.
type ConfigurationError struct {
	Field string
	err   error
}

func NewConfigurationError(field string, format string, args ...any) error {
	return &ConfigurationError{
		Field: field,
		err:   errors.Errorf(format, args...),
	}
}

func WrapConfigurationError(err error, field string) error {
	if err == nil {
		return nil
	}

	return &ConfigurationError{
		Field: field,
		err:   err,
	}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration of %v: %v", e.Field, e.err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func (e *ConfigurationError) Cause() error {
	return e.err
}

// RepositoryAccessError means the repository could not be read or the branch
// could not be resolved. No report is produced.
type RepositoryAccessError struct {
	Path string
	err  error
}

func NewRepositoryAccessError(err error, path string) error {
	if err == nil {
		return nil
	}

	return &RepositoryAccessError{
		Path: path,
		err:  err,
	}
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("error accessing repository %v: %v", e.Path, e.err)
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.err
}

func (e *RepositoryAccessError) Cause() error {
	return e.err
}

// ReportWriteError means a finished report could not be stored. The report
// itself is still valid.
type ReportWriteError struct {
	Destination string
	err         error
}

func NewReportWriteError(err error, destination string) error {
	if err == nil {
		return nil
	}

	return &ReportWriteError{
		Destination: destination,
		err:         err,
	}
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("error writing report to %v: %v", e.Destination, e.err)
}

func (e *ReportWriteError) Unwrap() error {
	return e.err
}

func (e *ReportWriteError) Cause() error {
	return e.err
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsRepositoryAccessError(err error) bool {
	var target *RepositoryAccessError
	return errors.As(err, &target)
}

func IsReportWriteError(err error) bool {
	var target *ReportWriteError
	return errors.As(err, &target)
}
