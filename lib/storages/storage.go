package storages

import (
	"github.com/iwata-n/repospots/lib/report"
)

// Storage keeps finished reports.
type Storage interface {
	// WriteReport stores r. Failures are returned as ReportWriteError and
	// leave r untouched.
	WriteReport(r *report.Report) error

	// LoadReport returns the last report stored.
	LoadReport() (*report.Report, error)

	Close() error
}
