package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/http"
	ioutils "github.com/handiism/csv-image-downloader/internal/io"
	"github.com/handiism/csv-image-downloader/internal/model"
)

// ErrNoColumns is returned when a run has no image columns to process,
// even after falling back to the configured default columns.
var ErrNoColumns = errors.New("no image columns selected")

// Params describes a single run.
type Params struct {
	// SourcePath is the CSV file to read.
	SourcePath string

	// DestDir receives the images. It is created if missing.
	DestDir string

	// LogPath is the append-mode error log. Defaults to <DestDir>/errors.txt.
	LogPath string

	// Columns are the selected image columns. Templates are aligned to
	// Columns by index; a missing or empty template uses the fallback one.
	Columns   []string
	Templates []string
}

// Manager runs the CSV to image pipeline.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	imageService *ioutils.ImageService
	imageOptions ioutils.ImageOptions

	observer Observer
	logger   logrus.FieldLogger
}

// NewManager creates a new Manager.
//
// A nil observer discards events and a nil logger discards diagnostics.
func NewManager(settings *config.Settings, observer Observer, logger logrus.FieldLogger) *Manager {
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(settings.ToClientOptions()),
		imageService: ioutils.NewImageService(),
		imageOptions: settings.ToImageOptions(),
		observer:     observer,
		logger:       logger,
	}
}

// Run processes every row of the source table and returns the final counts.
//
// Setup problems (no columns, destination not creatable, source unreadable,
// log not openable) abort the run before any row is touched and are
// returned as the error. Everything after that is recorded as a failure,
// written to the log and reported to the observer; Run then returns a nil error.
func (m *Manager) Run(ctx context.Context, p Params) (model.RunResult, error) {
	result := model.RunResult{RunID: uuid.NewString()}

	columns, templates := m.selection(p.Columns, p.Templates)
	if len(columns) == 0 {
		return result, ErrNoColumns
	}

	if err := ioutils.EnsureDir(p.DestDir); err != nil {
		return result, fmt.Errorf("failed to create destination %s: %w", p.DestDir, err)
	}

	table, err := ioutils.ReadTable(p.SourcePath)
	if err != nil {
		return result, fmt.Errorf("failed to read source: %w", err)
	}

	logPath := p.LogPath
	if logPath == "" {
		logPath = m.settings.LogPath(p.DestDir)
	}
	logFile, err := ioutils.OpenAppend(logPath)
	if err != nil {
		return result, fmt.Errorf("failed to open log %s: %w", logPath, err)
	}
	defer logFile.Close()

	r := &run{
		m:         m,
		dest:      p.DestDir,
		columns:   columns,
		templates: templates,
		errLog:    logFile,
		log: m.logger.WithFields(logrus.Fields{
			"run_id": result.RunID,
			"source": p.SourcePath,
			"dest":   p.DestDir,
		}),
		result: result,
	}

	total := table.Len()
	r.log.WithFields(logrus.Fields{
		"rows":    total,
		"columns": columns,
	}).Info("Run started")

	for i, row := range table.Rows {
		r.processRow(ctx, row)
		r.result.Rows++
		m.observer.Progress(i+1, total)
	}

	r.log.WithFields(logrus.Fields{
		"downloaded": r.result.Downloaded,
		"failed":     r.result.Failed,
		"bytes":      r.result.Bytes,
	}).Info("Run finished")

	return r.result, nil
}

// selection applies the configured fallbacks to the requested columns.
func (m *Manager) selection(columns, templates []string) ([]string, []string) {
	if len(columns) == 0 {
		columns = m.settings.FallbackColumns
	}

	cols := make([]string, len(columns))
	tmpls := make([]string, len(columns))
	for i, col := range columns {
		cols[i] = col
		if i < len(templates) && templates[i] != "" {
			tmpls[i] = templates[i]
		} else {
			tmpls[i] = m.settings.FallbackTemplateFor(i)
		}
	}
	return cols, tmpls
}

// run holds the state of one Run call.
type run struct {
	m         *Manager
	dest      string
	columns   []string
	templates []string
	errLog    io.Writer
	log       *logrus.Entry
	result    model.RunResult
}

func (r *run) processRow(ctx context.Context, row *model.Row) {
	outcome := Classify(row, r.columns, r.m.settings)
	if outcome.Skip {
		r.log.WithFields(logrus.Fields{
			"row":    row.Index,
			"reason": outcome.Failure.Kind.String(),
		}).Debug("Row skipped")
		r.fail(outcome.Failure)
		return
	}

	r.log.WithFields(logrus.Fields{
		"row":        row.Index,
		"identifier": outcome.Identifier,
	}).Debug("Processing row")

	for i, col := range r.columns {
		r.processColumn(ctx, row, outcome.Identifier, col, r.templates[i])
	}
}

func (r *run) processColumn(ctx context.Context, row *model.Row, id, col, template string) {
	url, ok := row.Get(col)
	if !ok || url == "" {
		r.fail(model.Failure{
			Kind:       model.FailureMissingValue,
			Row:        row.Index,
			Identifier: id,
			Column:     col,
			Message:    fmt.Sprintf("%s, missing %q", id, col),
		})
		return
	}

	name := model.ResolveFileName(template, row)
	dest := filepath.Join(r.dest, name)

	n, err := r.m.httpClient.DownloadFile(ctx, url, dest, nil)
	if err != nil {
		r.fail(model.Failure{
			Kind:       model.FailureTransfer,
			Row:        row.Index,
			Identifier: id,
			Column:     col,
			Err:        err,
			Message:    fmt.Sprintf("%s, %s, download error: %v", id, col, err),
		})
		return
	}

	r.result.Downloaded++
	r.result.Bytes += n
	r.log.WithFields(logrus.Fields{
		"row":   row.Index,
		"file":  name,
		"bytes": n,
	}).Debug("Downloaded")

	if r.m.imageOptions.Enabled() {
		if err := r.m.imageService.ProcessFile(ctx, dest, r.m.imageOptions); err != nil {
			r.log.WithError(err).WithField("file", name).Warn("Image post-processing failed, keeping original")
		}
	}
}

// fail records one failure: a log line, the counter and the observer.
func (r *run) fail(f model.Failure) {
	r.result.Failed++
	if _, err := io.WriteString(r.errLog, f.Message+"\n"); err != nil {
		r.log.WithError(err).Warn("Failed to write error log")
	}
	r.m.observer.Failure(f)
}
