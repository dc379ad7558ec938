package download

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	ioutils "github.com/handiism/csv-image-downloader/internal/io"
	"github.com/handiism/csv-image-downloader/internal/model"
)

// BatchResult aggregates the runs of a file list.
type BatchResult struct {
	model.RunResult

	// Files is the number of CSV files that were run.
	Files int

	// Missing lists entries of the file list that do not exist.
	Missing []string

	// Errors holds setup errors of individual files. Those files are skipped.
	Errors []error

	// LogPath is the error log shared by all runs.
	LogPath string
}

// RunBatch runs every CSV named in listPath into destDir.
//
// The list holds one path per line; relative paths are resolved against the
// list's own directory. All runs use the fallback columns and templates and
// append to the same error log. Missing files and per-file setup errors are
// collected in the result and do not stop the batch. Only an unreadable list
// is returned as an error.
func (m *Manager) RunBatch(ctx context.Context, listPath, destDir string) (BatchResult, error) {
	batch := BatchResult{LogPath: m.settings.LogPath(destDir)}

	lines, err := ioutils.ReadLines(listPath)
	if err != nil {
		return batch, fmt.Errorf("failed to read file list: %w", err)
	}

	baseDir := filepath.Dir(listPath)
	for _, line := range lines {
		path := line
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		if !ioutils.FileExists(path) {
			m.logger.WithField("source", path).Warn("File does not exist")
			batch.Missing = append(batch.Missing, path)
			continue
		}

		result, err := m.Run(ctx, Params{
			SourcePath: path,
			DestDir:    destDir,
			LogPath:    batch.LogPath,
		})
		if err != nil {
			m.logger.WithError(err).WithField("source", path).Error("Run failed")
			batch.Errors = append(batch.Errors, fmt.Errorf("%s: %w", path, err))
			continue
		}

		batch.Files++
		batch.Add(result)
	}

	m.logger.WithFields(logrus.Fields{
		"files":      batch.Files,
		"missing":    len(batch.Missing),
		"downloaded": batch.Downloaded,
		"failed":     batch.Failed,
	}).Info("Batch finished")

	return batch, nil
}
