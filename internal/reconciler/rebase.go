package reconciler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FlorentLa/obsidian-whisper/pkg/timestamp"
)

var reBlockStart = regexp.MustCompile(`t0 = (\d+) ms`)

// RebaseBlocks converts streaming recognizer output, where each block
// header carries "t0 = N ms" and segment times are relative to that block,
// into absolute segment lines. Lines other than segments are dropped.
// Output without any block header is returned unchanged.
func RebaseBlocks(output string) string {
	if !reBlockStart.MatchString(output) {
		return output
	}

	var (
		b      strings.Builder
		offset int64
	)
	for _, line := range strings.Split(output, "\n") {
		if m := reBlockStart.FindStringSubmatch(line); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				offset = n
			}
			continue
		}

		m := reSegmentLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		start, err := timestamp.ToMs(m[1])
		if err != nil {
			continue
		}
		end, err := timestamp.ToMs(m[2])
		if err != nil {
			continue
		}

		b.WriteString(Segment{Text: m[3], StartMs: offset + start, EndMs: offset + end}.String())
		b.WriteString("\n")
	}
	return b.String()
}
