// Package notify announces finished transcript runs to other services.
package notify

import (
	"context"
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/store"
)

type Publisher interface {
	Publish(ctx context.Context, event RunCompleted) error
	Close()
}

// RunCompleted is published once per processed transcript.
type RunCompleted struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	Parsed      int       `json:"parsed"`
	Kept        int       `json:"kept"`
	SummaryLen  int       `json:"summary_len"`
	CompletedAt time.Time `json:"completed_at"`
}

func NewRunCompleted(run *store.Run, completedAt time.Time) RunCompleted {
	return RunCompleted{
		RunID:       run.ID,
		Source:      run.Source,
		Status:      run.Status,
		Parsed:      run.Parsed,
		Kept:        run.Kept,
		SummaryLen:  len(run.Summary),
		CompletedAt: completedAt,
	}
}

type nopPublisher struct{}

// Nop returns a Publisher that drops every event. Used when NATS is not
// configured.
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, RunCompleted) error { return nil }
func (nopPublisher) Close() {}
