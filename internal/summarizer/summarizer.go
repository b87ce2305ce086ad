package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/FlorentLa/obsidian-whisper/pkg/splitter"
)

const (
	tldrChunkSize   = 3000
	dedupChunkSize  = 2000
	auxChunkOverlap = 200
)

func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.opts.Deduplicate {
		deduped, err := s.Deduplicate(ctx, text)
		if err != nil {
			return "", fmt.Errorf("deduplicate: %w", err)
		}
		text = deduped
	}

	switch s.opts.Mode {
	case ModeTLDR:
		return s.TLDR(ctx, text)
	case ModeDensity:
		return s.Densify(ctx, text)
	default:
		return "", fmt.Errorf("unknown summarizer mode %q", s.opts.Mode)
	}
}

// TLDR maps every chunk to a summary and combines all of them in a single call.
func (s *implSummarizer) TLDR(ctx context.Context, text string) (string, error) {
	chunks, err := splitter.New(tldrChunkSize, auxChunkOverlap, s.length).Split(text)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", nil
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info(ctx, "Summarizing chunk %d/%d", i+1, len(chunks))
		out, err := s.gen.Generate(ctx, tldrChunkPrompt, map[string]string{"text": chunk})
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, out)
	}

	final, err := s.gen.Generate(ctx, tldrCombinePrompt, map[string]string{
		"summaries": strings.Join(summaries, "\n\n"),
	})
	if err != nil {
		return "", fmt.Errorf("combine summaries: %w", err)
	}
	return strings.TrimSpace(final), nil
}

func (s *implSummarizer) Deduplicate(ctx context.Context, text string) (string, error) {
	chunks, err := splitter.New(dedupChunkSize, auxChunkOverlap, s.length).Split(text)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", nil
	}

	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Debug(ctx, "Deduplicating chunk %d/%d", i+1, len(chunks))
		deduped, err := s.gen.Generate(ctx, dedupPrompt, map[string]string{"text": chunk})
		if err != nil {
			return "", fmt.Errorf("deduplicate chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, deduped)
	}
	return strings.Join(out, "\n\n"), nil
}
