package processor

import (
	"context"

	"github.com/FlorentLa/obsidian-whisper/internal/store"
)

// Processor turns raw recognizer transcripts into clean transcripts and
// summaries.
type Processor interface {
	// Process handles a transcript file dropped in the input directory:
	// outputs are written next to each other and the raw file is archived.
	Process(ctx context.Context, path string) error
	// Run reconciles and summarizes raw recognizer output, records the run
	// and announces it.
	Run(ctx context.Context, source, raw string) (*store.Run, error)
}

// RunStore records finished runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *store.Run) error
}
