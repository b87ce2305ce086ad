package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/FlorentLa/obsidian-whisper/pkg/splitter"
)

// Densify runs the chain-of-density prompt on every chunk, keeps the last
// dense summary of each response and reduces them group by group.
func (s *implSummarizer) Densify(ctx context.Context, text string) (string, error) {
	chunks, err := splitter.New(s.opts.ChunkSize, s.opts.ChunkOverlap, s.length).Split(text)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", nil
	}
	s.logger.Info(ctx, "Densifying %d chunks", len(chunks))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info(ctx, "Processing chunk %d/%d", i+1, len(chunks))

		resp, err := s.gen.Generate(ctx, s.opts.DensityPrompt, s.densityVars(chunk))
		if err != nil {
			return "", fmt.Errorf("densify chunk %d/%d: %w", i+1, len(chunks), err)
		}

		summary, via := extractSummary(resp)
		if via == "" {
			s.logger.Debug(ctx, "No dense summary found in chunk %d, response: %q", i+1, resp)
		} else {
			s.logger.Debug(ctx, "Chunk %d summary extracted from %s response", i+1, via)
		}
		summaries = append(summaries, summary)
	}

	groups := groupByBudget(summaries, s.length, s.opts.GroupBudget)
	s.logger.Debug(ctx, "Reducing %d summaries in %d groups", len(summaries), len(groups))

	return s.reduce(ctx, groups)
}

// reduce combines each group once and, when there are several groups,
// combines the group results one more time.
func (s *implSummarizer) reduce(ctx context.Context, groups [][]string) (string, error) {
	reduced := make([]string, 0, len(groups))
	for i, group := range groups {
		out, err := s.combine(ctx, group)
		if err != nil {
			return "", fmt.Errorf("combine group %d/%d: %w", i+1, len(groups), err)
		}
		reduced = append(reduced, out)
	}

	switch len(reduced) {
	case 0:
		return "", nil
	case 1:
		return strings.TrimSpace(reduced[0]), nil
	}

	final, err := s.combine(ctx, reduced)
	if err != nil {
		return "", fmt.Errorf("combine groups: %w", err)
	}
	return strings.TrimSpace(final), nil
}

func (s *implSummarizer) combine(ctx context.Context, summaries []string) (string, error) {
	return s.gen.Generate(ctx, combinePrompt, map[string]string{
		"summaries": strings.Join(summaries, "\n\n"),
	})
}

func (s *implSummarizer) densityVars(chunk string) map[string]string {
	return map[string]string{
		"content":          chunk,
		"content_category": s.opts.ContentCategory,
		"entity_range":     s.opts.EntityRange,
		"max_words":        s.opts.MaxWords,
		"iterations":       s.opts.Iterations,
		"max_relationship": s.opts.MaxRelationship,
	}
}
