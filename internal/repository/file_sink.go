package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
)

// FileReportSink writes the rendered text report into a directory.
type FileReportSink struct {
	dir    string
	nameFn func(time.Time) string
}

var _ domrepo.ReportSink = (*FileReportSink)(nil)

// NewFileReportSink creates a sink under dir. nameFn maps the run's generation
// time to a file name; nil names files after the run ID.
func NewFileReportSink(dir string, nameFn func(time.Time) string) *FileReportSink {
	if dir == "" {
		dir = "."
	}
	return &FileReportSink{dir: dir, nameFn: nameFn}
}

func (s *FileReportSink) Name() string { return "file" }

// Path returns where the report of run is written.
func (s *FileReportSink) Path(run *models.Run) string {
	name := run.ID + ".txt"
	if s.nameFn != nil {
		name = s.nameFn(run.Result.GeneratedAt)
	}
	return filepath.Join(s.dir, name)
}

// Save overwrites any report of the same day.
func (s *FileReportSink) Save(ctx context.Context, run *models.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	path := s.Path(run)
	if err := os.WriteFile(path, []byte(run.Report), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
