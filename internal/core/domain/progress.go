package domain

// BatchState is the bulk indexing state machine.
type BatchState int

const (
	// BatchIdle means no bulk run is active.
	BatchIdle BatchState = iota

	// BatchScanning means the work list is being computed.
	BatchScanning

	// BatchIndexing means documents are being processed.
	BatchIndexing

	// BatchCompleted means the run finished the full work list.
	BatchCompleted

	// BatchCancelled means the run stopped at a document boundary
	// after a cancellation request.
	BatchCancelled

	// BatchFailed means scanning itself failed. Per-document errors
	// never produce this state.
	BatchFailed
)

// String returns a human-readable state name.
func (s BatchState) String() string {
	switch s {
	case BatchIdle:
		return "idle"
	case BatchScanning:
		return "scanning"
	case BatchIndexing:
		return "indexing"
	case BatchCompleted:
		return "completed"
	case BatchCancelled:
		return "cancelled"
	case BatchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IndexingProgress is emitted before each document in a bulk run.
// Listeners must not block; delivery is fire-and-forget.
type IndexingProgress struct {
	// Current is the 1-based position in the work list.
	Current int

	// Total is the work list length.
	Total int

	// DocumentName is the file name being indexed.
	DocumentName string
}

// BatchResult summarises a bulk indexing run.
type BatchResult struct {
	// State is the terminal state of the run.
	State BatchState

	// Total is the number of documents in the work list.
	Total int

	// Succeeded is the number of documents indexed successfully.
	Succeeded int

	// Failed is the number of per-document failures.
	Failed int

	// Message is a human-readable summary.
	Message string
}
