package summarizer

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// extractor pulls the densest summary out of one shape of model response.
// ok is false when the response does not have that shape.
type extractor struct {
	name    string
	extract func(response string) (summary string, ok bool)
}

// extractors are tried in order; the first match wins.
var extractors = []extractor{
	{name: "json", extract: fromJSONList},
	{name: "marker", extract: fromMarker},
	{name: "bullets", extract: fromBullets},
}

var (
	reDenserField   = regexp.MustCompile(`"denser_summary"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reDenserMarker  = regexp.MustCompile(`(?i)denser summary:`)
	reSummaryHeader = regexp.MustCompile(`(?i)summary.*:\s*$`)
)

// extractSummary returns the last dense summary in response and the name
// of the extractor that found it. Unrecognised responses give "", "".
func extractSummary(response string) (string, string) {
	for _, e := range extractors {
		if s, ok := e.extract(response); ok {
			return s, e.name
		}
	}
	return "", ""
}

// fromJSONList handles `[{"missing_entities": ..., "denser_summary": ...}, ...]`.
// Responses that are not valid JSON fall back to matching the fields directly.
func fromJSONList(response string) (string, bool) {
	text := strings.TrimSpace(response)
	if !strings.HasPrefix(text, "[") {
		return "", false
	}

	var steps []struct {
		DenserSummary string `json:"denser_summary"`
	}
	if err := json.Unmarshal([]byte(text), &steps); err == nil {
		for i := len(steps) - 1; i >= 0; i-- {
			if steps[i].DenserSummary != "" {
				return strings.TrimSpace(steps[i].DenserSummary), true
			}
		}
	}

	matches := reDenserField.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	raw := matches[len(matches)-1][1]
	if s, err := strconv.Unquote(`"` + raw + `"`); err == nil {
		raw = s
	}
	return strings.TrimSpace(raw), true
}

// fromMarker handles prose with "Denser summary:" lines and takes the
// paragraph after the last one.
func fromMarker(response string) (string, bool) {
	locs := reDenserMarker.FindAllStringIndex(response, -1)
	if len(locs) == 0 {
		return "", false
	}
	rest := response[locs[len(locs)-1][1]:]
	rest = strings.TrimLeft(rest, "* \t\r\n")
	if i := strings.Index(rest, "\n\n"); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// fromBullets takes the trailing run of "-" lines once "...summary...:"
// headers are removed.
func fromBullets(response string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if reSummaryHeader.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	start := len(lines)
	for start > 0 && strings.HasPrefix(lines[start-1], "-") {
		start--
	}
	if start == len(lines) {
		return "", false
	}
	return strings.Join(lines[start:], "\n"), true
}
