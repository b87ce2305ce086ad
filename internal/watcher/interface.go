package watcher

import "context"

// Watcher feeds transcripts dropped into the input directory to a handler.
// Start returns only once every handler it launched has returned.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// TranscriptHandler processes one transcript file. Errors are logged by the
// watcher and do not stop it.
type TranscriptHandler func(ctx context.Context, path string) error
