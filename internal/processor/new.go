package processor

import (
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/config"
	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/internal/notify"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	reconciler reconciler.Reconciler
	summarizer summarizer.Summarizer
	runs       RunStore
	publisher  notify.Publisher
	logger     logger.Logger
	now        func() time.Time
}

// New creates a new Processor instance
func New(cfg *config.Config, rec reconciler.Reconciler, sum summarizer.Summarizer, runs RunStore, pub notify.Publisher, log logger.Logger) Processor {
	if pub == nil {
		pub = notify.Nop()
	}
	return &implProcessor{
		cfg:        cfg,
		reconciler: rec,
		summarizer: sum,
		runs:       runs,
		publisher:  pub,
		logger:     log,
		now:        time.Now,
	}
}
