// Package output renders processed transcripts and their summaries as
// markdown notes and docx documents.
package output

import (
	"strings"
	"time"
)

// TranscriptMarkdown is the clean transcript note, headed by the time
// processing started.
func TranscriptMarkdown(startedAt time.Time, transcript string) string {
	return "Transcription started at " + startedAt.Format("2006-01-02 15:04:05") + "\n" + transcript
}

// InsightsMarkdown puts the summary above the transcript it was made from.
func InsightsMarkdown(summary, transcript string) string {
	return "# insights\n" + strings.TrimSpace(summary) + "\n# original transcript\n" + transcript
}
