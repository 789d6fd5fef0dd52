// Package orm archives reports in a sql database using gorm.
package orm

import (
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/teris-io/shortid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iwata-n/repospots/lib/consoles"
	"github.com/iwata-n/repospots/lib/model"
	"github.com/iwata-n/repospots/lib/report"
	"github.com/iwata-n/repospots/lib/storages"
)

const filesBatchSize = 500

type gormStorage struct {
	mutex       sync.Mutex
	db          *gorm.DB
	console     consoles.Console
	destination string
}

// NewGormStorage opens the database and creates the tables. Every written
// report is kept as a new run; nothing is read back during analysis.
func NewGormStorage(d gorm.Dialector, destination string, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger: l,
	})
	if err != nil {
		return nil, model.NewReportWriteError(err, destination)
	}

	err = db.AutoMigrate(&sqlRun{}, &sqlRunFile{})
	if err != nil {
		return nil, model.NewReportWriteError(err, destination)
	}

	return &gormStorage{
		db:          db,
		console:     console,
		destination: destination,
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func (s *gormStorage) WriteReport(r *report.Report) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	serialized, err := report.Serialize(r)
	if err != nil {
		return model.NewReportWriteError(err, s.destination)
	}

	name, err := shortid.Generate()
	if err != nil {
		return model.NewReportWriteError(err, s.destination)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		run := newSqlRun(name, r, serialized)

		err := tx.Omit("Files").Create(run).Error
		if err != nil {
			return err
		}

		files := lo.MapToSlice(r.Result.Files, func(_ string, f report.FileView) *sqlRunFile {
			return newSqlRunFile(run.ID, f)
		})
		if len(files) == 0 {
			return nil
		}

		sort.Slice(files, func(i, j int) bool {
			return files[i].Path < files[j].Path
		})

		return tx.CreateInBatches(files, filesBatchSize).Error
	})
	if err != nil {
		return model.NewReportWriteError(err, s.destination)
	}

	s.console.Debugf("Archived run %v with %v files\n", name, len(r.Result.Files))

	return nil
}

func (s *gormStorage) LoadReport() (*report.Report, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var run sqlRun
	err := s.db.Order("id DESC").Limit(1).Find(&run).Error
	if err != nil {
		return nil, errors.Wrap(err, "error loading last run")
	}
	if run.ID == 0 {
		return nil, errors.Errorf("no reports archived in %v", s.destination)
	}

	return report.Deserialize([]byte(run.Report))
}
