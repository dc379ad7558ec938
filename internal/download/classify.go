package download

import (
	"fmt"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/model"
)

// Outcome is the result of classifying a row before any download.
type Outcome struct {
	// Identifier is the first non-empty value of the identifier fields.
	Identifier string

	// Skip is set when the whole row must be skipped. Failure then holds
	// the single row-level failure to record.
	Skip    bool
	Failure model.Failure
}

// Identifier returns the first non-empty value among the configured
// identifier fields, or "" if none is set.
func Identifier(row *model.Row, settings *config.Settings) string {
	for _, field := range settings.IdentifierFields {
		if v := row.Value(field); v != "" {
			return v
		}
	}
	return ""
}

// label names a row in failure messages.
func label(row *model.Row, settings *config.Settings) string {
	if v, ok := row.Get(settings.LabelField); ok && v != "" {
		return v
	}
	return "N/A"
}

// Classify decides whether a row is processed column by column or skipped.
//
// A row whose identifier equals the sentinel is skipped first. Otherwise a
// row where every selected column holds the sentinel is skipped. An absent
// column never counts as the sentinel.
func Classify(row *model.Row, columns []string, settings *config.Settings) Outcome {
	id := Identifier(row, settings)
	out := Outcome{Identifier: id}

	if id == settings.Sentinel {
		out.Skip = true
		out.Failure = model.Failure{
			Kind:       model.FailureMissingIdentifier,
			Row:        row.Index,
			Identifier: id,
			Message:    fmt.Sprintf("%s not in database", label(row, settings)),
		}
		return out
	}

	if allUnavailable(row, columns, settings.Sentinel) {
		out.Skip = true
		out.Failure = model.Failure{
			Kind:       model.FailureAllUnavailable,
			Row:        row.Index,
			Identifier: id,
			Message:    fmt.Sprintf("%s, all images marked as %q", id, settings.Sentinel),
		}
	}

	return out
}

func allUnavailable(row *model.Row, columns []string, sentinel string) bool {
	if len(columns) == 0 {
		return false
	}
	for _, col := range columns {
		v, ok := row.Get(col)
		if !ok || v != sentinel {
			return false
		}
	}
	return true
}
