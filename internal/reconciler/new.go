package reconciler

import (
	"github.com/FlorentLa/obsidian-whisper/internal/logger"
)

// DefaultToleranceMs is the slack allowed when one segment's window is
// checked against another's.
const DefaultToleranceMs = 100

type implReconciler struct {
	toleranceMs int64
	logger      logger.Logger
}

// New creates a Reconciler. A non-positive tolerance uses DefaultToleranceMs.
func New(toleranceMs int64, log logger.Logger) Reconciler {
	if toleranceMs <= 0 {
		toleranceMs = DefaultToleranceMs
	}
	return &implReconciler{
		toleranceMs: toleranceMs,
		logger:      log,
	}
}
