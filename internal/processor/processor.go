package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/notify"
	"github.com/FlorentLa/obsidian-whisper/internal/output"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/store"
)

// Process orchestrates the pipeline for one transcript file
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := p.now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript processing: %s", path)
	p.logger.Info(ctx, "========================================")

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	run, err := p.Run(ctx, name, string(raw))
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if err := p.writeOutputs(ctx, name, run, startTime); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Run: %s (%d/%d segments kept)", run.ID, run.Kept, run.Parsed)
	p.logger.Info(ctx, "Output: %s", filepath.Join(p.cfg.Paths.Output, name))
	p.logger.Info(ctx, "Processing time: %s", p.now().Sub(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// Run reconciles raw, summarizes the clean transcript and records the run.
// A failed summarization is still recorded and announced before the error
// is returned.
func (p *implProcessor) Run(ctx context.Context, source, raw string) (*store.Run, error) {
	if p.rebaseBlocks() {
		raw = reconciler.RebaseBlocks(raw)
	}

	res := p.reconciler.Reconcile(ctx, raw)
	p.logger.Info(ctx, "Reconciled %s: %d of %d segments kept", source, res.Kept, res.Parsed)

	run := &store.Run{
		Source:     source,
		Transcript: res.Text,
		Parsed:     res.Parsed,
		Kept:       res.Kept,
		Status:     store.StatusDone,
		CreatedAt:  p.now(),
	}

	summary, sumErr := p.summarizer.Summarize(ctx, res.Text)
	if sumErr != nil {
		run.Status = store.StatusFailed
		run.Error = sumErr.Error()
	} else {
		run.Summary = summary
	}

	if err := p.runs.SaveRun(ctx, run); err != nil {
		if sumErr != nil {
			p.logger.Error(ctx, "Failed to record failed run for %s: %v", source, err)
			return nil, fmt.Errorf("summarize: %w", sumErr)
		}
		return nil, fmt.Errorf("save run: %w", err)
	}

	if err := p.publisher.Publish(ctx, notify.NewRunCompleted(run, p.now())); err != nil {
		p.logger.Warn(ctx, "Failed to publish run %s: %v", run.ID, err)
	}

	if sumErr != nil {
		return run, fmt.Errorf("summarize: %w", sumErr)
	}
	return run, nil
}

// writeOutputs writes the transcript and insights notes, then their docx
// renditions. Docx failures are logged only.
func (p *implProcessor) writeOutputs(ctx context.Context, name string, run *store.Run, startedAt time.Time) error {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(p.cfg.Paths.Output, name)

	insights := output.InsightsMarkdown(run.Summary, run.Transcript)
	notes := map[string]string{
		base + ".transcript.md": output.TranscriptMarkdown(startedAt, run.Transcript),
		base + ".summary.md":    insights,
	}
	for path, content := range notes {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}

	if err := output.WriteSummaryDocx(name, insights, base+".summary.docx"); err != nil {
		p.logger.Warn(ctx, "Failed to write summary docx for %s: %v", name, err)
	}
	if err := output.WriteTranscriptDocx(name, run.Transcript, base+".transcript.docx"); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript docx for %s: %v", name, err)
	}

	return nil
}

func (p *implProcessor) rebaseBlocks() bool {
	return p.cfg.Reconciler.RebaseBlocks != nil && *p.cfg.Reconciler.RebaseBlocks
}
