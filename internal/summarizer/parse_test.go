package summarizer

import (
	"testing"

	"github.com/FlorentLa/obsidian-whisper/pkg/tokenizer"
)

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantVia  string
	}{
		{
			name:     "json list keeps last",
			response: `[{"missing_entities": "", "denser_summary": "first"}, {"missing_entities": "Bob", "denser_summary": "second \"quoted\""}]`,
			want:     `second "quoted"`,
			wantVia:  "json",
		},
		{
			name:     "json list with leading whitespace",
			response: "\n  [{\"denser_summary\": \"only\"}]",
			want:     "only",
			wantVia:  "json",
		},
		{
			name:     "truncated json falls back to field matching",
			response: `[{"denser_summary": "a"}, {"denser_summary": "b"}`,
			want:     "b",
			wantVia:  "json",
		},
		{
			name:     "marker keeps last",
			response: "Denser summary: X\nDenser summary: Y",
			want:     "Y",
			wantVia:  "marker",
		},
		{
			name:     "marker is case insensitive and stops at blank line",
			response: "Iteration 1\nDENSER SUMMARY: draft\n\nIteration 2\n**Denser summary:** final text\nstill final\n\nNotes: none",
			want:     "final text\nstill final",
			wantVia:  "marker",
		},
		{
			name:     "marker on its own line",
			response: "Denser summary:\nthe body",
			want:     "the body",
			wantVia:  "marker",
		},
		{
			name:     "bullets after summary header",
			response: "Here is the final summary:\n- one\n- two\n",
			want:     "- one\n- two",
			wantVia:  "bullets",
		},
		{
			name:     "only trailing bullet run",
			response: "Intro\n- a\nmiddle\nFinal summary:\n- b\n- c",
			want:     "- b\n- c",
			wantVia:  "bullets",
		},
		{
			name:     "unrecognised",
			response: "I cannot help with that.",
			want:     "",
			wantVia:  "",
		},
		{
			name:     "empty",
			response: "",
			want:     "",
			wantVia:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, via := extractSummary(tt.response)
			if got != tt.want {
				t.Errorf("extractSummary() = %q, want %q", got, tt.want)
			}
			if via != tt.wantVia {
				t.Errorf("extractSummary() via = %q, want %q", via, tt.wantVia)
			}
		})
	}
}

func TestGroupByBudget(t *testing.T) {
	tests := []struct {
		name      string
		summaries []string
		budget    int
		want      [][]string
	}{
		{
			name:      "crossing the budget closes the group",
			summaries: []string{"a b", "c d", "e f", "g", "h i j"},
			budget:    5,
			want:      [][]string{{"a b", "c d", "e f"}, {"g", "h i j"}},
		},
		{
			name:      "reaching the budget is not crossing it",
			summaries: []string{"a b", "c d e", "f"},
			budget:    5,
			want:      [][]string{{"a b", "c d e", "f"}},
		},
		{
			name:      "oversized item forms its own group",
			summaries: []string{"a b c d e f", "g"},
			budget:    5,
			want:      [][]string{{"a b c d e f"}, {"g"}},
		},
		{
			name:      "empty summaries are kept",
			summaries: []string{"", ""},
			budget:    5,
			want:      [][]string{{"", ""}},
		},
		{
			name:      "no summaries",
			summaries: nil,
			budget:    5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupByBudget(tt.summaries, tokenizer.Words, tt.budget)
			if len(got) != len(tt.want) {
				t.Fatalf("groupByBudget() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("group %d = %q, want %q", i, got[i], tt.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("group %d item %d = %q, want %q", i, j, got[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}
