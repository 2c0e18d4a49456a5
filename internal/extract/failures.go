package extract

import "log/slog"

// detailedFailureLimit caps how many failures get full diagnostic detail.
// Under systematic failure (a mangled dump, a schema change) every record
// fails the same way; three full diagnostics are enough to debug it without
// flooding the logs.
const detailedFailureLimit = 3

// FailedRecord captures one record that could not be shaped into a canonical
// record. ID is "unknown" when the identifier itself was unextractable.
type FailedRecord struct {
	ID    string `json:"id"`
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// FailureTracker accumulates per-record structural failures for a batch run.
// Failures never propagate past the batch boundary; they are logged and
// counted here instead.
type FailureTracker struct {
	failures []FailedRecord
}

// NewFailureTracker creates an empty tracker.
func NewFailureTracker() *FailureTracker {
	return &FailureTracker{}
}

// Record logs and stores one failed record. The first few failures are logged
// with full detail; later ones get a one-line summary.
func (t *FailureTracker) Record(id string, line int, err error) {
	if id == "" {
		id = "unknown"
	}

	t.failures = append(t.failures, FailedRecord{
		ID:    id,
		Line:  line,
		Error: err.Error(),
	})

	if len(t.failures) <= detailedFailureLimit {
		slog.Error("Failed to extract record", "id", id, "line", line, "err", err)
		return
	}

	slog.Warn("Failed to extract record", "id", id, "line", line)
}

// Count returns how many records failed so far.
func (t *FailureTracker) Count() int {
	return len(t.failures)
}

// Failures returns the accumulated failures in encounter order.
func (t *FailureTracker) Failures() []FailedRecord {
	return t.failures
}
