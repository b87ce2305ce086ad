package reconciler

import "context"

// Reconciler turns a raw timestamped recognizer transcript into a clean,
// deduplicated, time-ordered plain-text transcript.
type Reconciler interface {
	Reconcile(ctx context.Context, transcript string) Result
}

// Result is the clean transcript plus the segment counts behind it.
type Result struct {
	Text   string
	Parsed int
	Kept   int
}
