package search

// ProgressReporter provides callbacks for reporting search progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnFileScanned is called after a file has been read and scanned.
	OnFileScanned(path string, matches int)

	// OnFileSkipped is called when a file could not be read.
	OnFileSkipped(path string, err error)

	// OnComplete is called once the walk is exhausted.
	OnComplete(result *Result)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnFileScanned(path string, matches int) {}
func (n *NoOpProgressReporter) OnFileSkipped(path string, err error)   {}
func (n *NoOpProgressReporter) OnComplete(result *Result)              {}
