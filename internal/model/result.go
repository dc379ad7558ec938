package model

// FailureKind classifies a failure recorded during a run.
type FailureKind int

const (
	// FailureMissingIdentifier means the row's identifier equals the sentinel.
	// The whole row is skipped.
	FailureMissingIdentifier FailureKind = iota

	// FailureAllUnavailable means every selected column equals the sentinel.
	// The whole row is skipped.
	FailureAllUnavailable

	// FailureMissingValue means a selected column is empty or absent.
	// Only that column is skipped.
	FailureMissingValue

	// FailureTransfer means the HTTP request failed or returned a non-2xx status.
	// Only that column is skipped.
	FailureTransfer
)

// String returns a short name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureMissingIdentifier:
		return "missing identifier"
	case FailureAllUnavailable:
		return "all unavailable"
	case FailureMissingValue:
		return "missing value"
	case FailureTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// RowLevel reports whether the failure skips the entire row.
func (k FailureKind) RowLevel() bool {
	return k == FailureMissingIdentifier || k == FailureAllUnavailable
}

// Failure describes one failure event. Each Failure adds exactly one to
// RunResult.Failed and produces exactly one line in the error log.
type Failure struct {
	Kind FailureKind

	// Row is the 1-based index of the data row.
	Row int

	// Identifier is the row's product identifier, empty if none was found.
	Identifier string

	// Column is the selected column involved; empty for row-level failures.
	Column string

	// Err is the underlying error for transfer failures.
	Err error

	// Message is the human-readable line written to the error log.
	Message string
}

// String returns the human-readable message.
func (f Failure) String() string {
	return f.Message
}

// RunResult holds the outcome of a pipeline run.
type RunResult struct {
	// RunID identifies the run in diagnostic logs.
	RunID string

	// Rows is the number of data rows processed.
	Rows int

	// Downloaded counts successfully written image files.
	Downloaded int

	// Failed counts failures of any kind.
	Failed int

	// Bytes is the total number of image bytes written.
	Bytes int64
}

// Add accumulates another result into r. RunID is kept.
func (r *RunResult) Add(other RunResult) {
	r.Rows += other.Rows
	r.Downloaded += other.Downloaded
	r.Failed += other.Failed
	r.Bytes += other.Bytes
}
