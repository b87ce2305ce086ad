package reconciler

import (
	"context"
	"sort"
	"strings"
)

type verdict int8

const (
	undetermined verdict = iota
	kept
	rejected
)

// Reconcile parses, deduplicates and renders a raw transcript.
func (r *implReconciler) Reconcile(ctx context.Context, transcript string) Result {
	segments := Parse(transcript)
	survivors := Deduplicate(segments, r.toleranceMs)

	r.logger.Debug(ctx, "Reconciled transcript: %d segments parsed, %d kept", len(segments), len(survivors))

	return Result{
		Text:   Render(survivors),
		Parsed: len(segments),
		Kept:   len(survivors),
	}
}

// Deduplicate orders segments by start time and drops the ones that repeat
// other segments. Survivors are returned in start-time order.
//
// A segment is rejected when a not-yet-rejected segment covers it. Otherwise
// it is compared with the last surviving segment on normalized text: if it
// extends that segment the earlier one is rejected, if it is that segment's
// tail or an exact repeat it is rejected itself. Rejections are applied once
// at the end, so a segment rejected early stays rejected even if the
// segment that covered it is rejected later.
func Deduplicate(segments []Segment, toleranceMs int64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMs < sorted[j].StartMs
	})
	for i := range sorted {
		sorted[i].SortIndex = i
	}

	marks := make(map[int]verdict, len(sorted))
	prev := 0
	for i, cur := range sorted {
		p := sorted[prev]
		switch {
		case coveredBy(sorted, marks, cur, toleranceMs):
			marks[cur.Index] = rejected
		case cur.Index == p.Index || cur.Index == 0 || marks[p.Index] == rejected:
		case strings.HasPrefix(normalize(cur.Text), normalize(p.Text)):
			marks[p.Index] = rejected
		case strings.HasSuffix(normalize(p.Text), normalize(cur.Text)):
			marks[cur.Index] = rejected
		case normalize(cur.Text) == normalize(p.Text):
			marks[cur.Index] = rejected
		}
		if marks[cur.Index] != rejected {
			prev = i
		}
	}

	var survivors []Segment
	for _, s := range sorted {
		if marks[s.Index] != rejected {
			survivors = append(survivors, s)
		}
	}
	return survivors
}

func coveredBy(segments []Segment, marks map[int]verdict, cur Segment, toleranceMs int64) bool {
	for _, other := range segments {
		if marks[other.Index] != rejected && other.Covers(cur, toleranceMs) {
			return true
		}
	}
	return false
}

// Render joins segment texts one per line, without timestamps.
func Render(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
		b.WriteString("\n")
	}
	return stripTimestamps(b.String())
}

// RenderTimestamped joins segments one per line in recognizer format.
func RenderTimestamped(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}
