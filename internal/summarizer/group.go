package summarizer

import "github.com/FlorentLa/obsidian-whisper/pkg/tokenizer"

// groupByBudget packs summaries into groups in order. A summary is always
// added to the current group; once the group's total length exceeds budget
// the next summary starts a new group.
func groupByBudget(summaries []string, length tokenizer.LengthFunc, budget int) [][]string {
	var (
		groups  [][]string
		current []string
		total   int
	)
	for _, s := range summaries {
		current = append(current, s)
		total += length(s)
		if total > budget {
			groups = append(groups, current)
			current, total = nil, 0
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
