package reconciler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/FlorentLa/obsidian-whisper/pkg/timestamp"
)

var (
	reSegmentLine = regexp.MustCompile(`\[(\d+:\d+:\d+\.\d+)\s+-->\s+(\d+:\d+:\d+\.\d+)\]\s*(.*)`)
	reTimestampTk = regexp.MustCompile(`\[\d+:\d+:\d+\.\d+\s+-->\s+\d+:\d+:\d+\.\d+\]\s*`)
	reNonWord     = regexp.MustCompile(`[^\w\s]`)
)

// Segment is one timestamped utterance. Index is its position in the raw
// input and is the segment's identity; SortIndex is its position after
// ordering by start time.
type Segment struct {
	Text      string
	StartMs   int64
	EndMs     int64
	Index     int
	SortIndex int
}

// String renders the segment back in recognizer format.
func (s Segment) String() string {
	return fmt.Sprintf("[%s --> %s] %s", timestamp.Format(s.StartMs), timestamp.Format(s.EndMs), s.Text)
}

// Contains reports whether other's time window lies inside s's window,
// widened by toleranceMs on both sides.
func (s Segment) Contains(other Segment, toleranceMs int64) bool {
	return s.StartMs-toleranceMs <= other.StartMs && s.EndMs+toleranceMs >= other.EndMs
}

// Covers reports whether s makes other redundant: a distinct segment whose
// window contains other's and whose text is at least as long.
func (s Segment) Covers(other Segment, toleranceMs int64) bool {
	return s.Index != other.Index &&
		s.Contains(other, toleranceMs) &&
		textLen(s.Text) >= textLen(other.Text)
}

// Parse extracts segments from every line matching
// "[hh:mm:ss.mmm --> hh:mm:ss.mmm] text". Other lines, and lines whose
// window does not parse or ends before it starts, are skipped.
func Parse(transcript string) []Segment {
	var segments []Segment
	for _, line := range strings.Split(transcript, "\n") {
		m := reSegmentLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		start, err := timestamp.ToMs(m[1])
		if err != nil {
			continue
		}
		end, err := timestamp.ToMs(m[2])
		if err != nil || end < start {
			continue
		}
		idx := len(segments)
		segments = append(segments, Segment{
			Text:      m[3],
			StartMs:   start,
			EndMs:     end,
			Index:     idx,
			SortIndex: idx,
		})
	}
	return segments
}

// normalize drops everything but word characters and whitespace, then
// lowercases.
func normalize(text string) string {
	return strings.ToLower(reNonWord.ReplaceAllString(text, ""))
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// stripTimestamps removes leftover "[a --> b]" tokens.
func stripTimestamps(text string) string {
	return reTimestampTk.ReplaceAllString(text, "")
}
