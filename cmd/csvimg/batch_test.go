package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/csv-image-downloader/internal/download"
	"github.com/handiism/csv-image-downloader/internal/model"
)

func TestPrintBatchSummary(t *testing.T) {
	t.Run("nothing processed omits log path", func(t *testing.T) {
		var buf bytes.Buffer
		printBatchSummary(&buf, download.BatchResult{
			Missing: []string{"a.csv"},
			Errors:  []error{errors.New("b.csv: csv file has no header row")},
			LogPath: "images/errors.txt",
		})

		out := buf.String()
		assert.Contains(t, out, "File a.csv does not exist.")
		assert.Contains(t, out, "Skipped b.csv")
		assert.Contains(t, out, "No CSV file was processed.")
		assert.NotContains(t, out, "errors.txt")
	})

	t.Run("totals with log path", func(t *testing.T) {
		var buf bytes.Buffer
		printBatchSummary(&buf, download.BatchResult{
			RunResult: model.RunResult{Downloaded: 4, Failed: 1},
			Files:     2,
			LogPath:   "images/errors.txt",
		})

		assert.Equal(t, "Downloaded 4 images, 1 errors. See log: images/errors.txt\n", buf.String())
	})
}
