package output

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	bodySize  = 13
	titleSize = 16
	textColor = "000000"
)

// headingSizes maps markdown heading depth to point size; deeper headings
// use bodySize.
var headingSizes = map[int]uint64{1: 16, 2: 15, 3: 14}

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reListItem  = regexp.MustCompile(`^(?:[\-\*]|\d+[.)])\s+(.+)$`)
	reTimestamp = regexp.MustCompile(`^\[\d+:\d{2}:\d{2}\.\d+\s*-->\s*\d+:\d{2}:\d{2}\.\d+\]\s*`)
	reInlineMd  = regexp.MustCompile("\\*\\*|__|`")
)

// span is a run of note text sharing one weight.
type span struct {
	text string
	bold bool
}

// noteDoc writes note paragraphs in a single font and color.
type noteDoc struct {
	doc *docx.RootDoc
}

func newNoteDoc(title string) (*noteDoc, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}
	n := &noteDoc{doc: doc}
	n.write([]span{{text: title, bold: true}}, titleSize)
	return n, nil
}

func (n *noteDoc) write(spans []span, size uint64) {
	p := n.doc.AddParagraph("")
	for _, s := range spans {
		run := p.AddText(stripInlineMarkdown(s.text)).Font(fontName).Size(size).Color(textColor)
		if s.bold {
			run.Bold(true)
		}
	}
}

func (n *noteDoc) save(path string) error {
	return n.doc.SaveTo(path)
}

// WriteSummaryDocx renders an insights note: headings become bold lines,
// list items become bullets and **bold** spans keep their weight.
func WriteSummaryDocx(title, markdown, path string) error {
	n, err := newNoteDoc(title)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			n.write([]span{{text: m[2], bold: true}}, headingSize(len(m[1])))
			continue
		}
		if m := reListItem.FindStringSubmatch(trimmed); m != nil {
			trimmed = "• " + m[1]
		}
		n.write(inlineSpans(trimmed), bodySize)
	}

	return n.save(path)
}

// WriteTranscriptDocx writes one paragraph per utterance. Recognizer
// timestamps are dropped if still present.
func WriteTranscriptDocx(title, transcript, path string) error {
	n, err := newNoteDoc(title)
	if err != nil {
		return err
	}
	n.write(nil, bodySize)

	for _, line := range strings.Split(transcript, "\n") {
		text := strings.TrimSpace(reTimestamp.ReplaceAllString(strings.TrimSpace(line), ""))
		if text == "" {
			continue
		}
		n.write([]span{{text: text}}, bodySize)
	}

	return n.save(path)
}

func headingSize(level int) uint64 {
	if size, ok := headingSizes[level]; ok {
		return size
	}
	return bodySize
}

// inlineSpans splits text on **bold** markers. Empty plain spans are dropped.
func inlineSpans(text string) []span {
	var spans []span
	last := 0
	for _, m := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, span{text: text[last:m[0]]})
		}
		spans = append(spans, span{text: text[m[2]:m[3]], bold: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, span{text: text[last:]})
	}
	return spans
}

func stripInlineMarkdown(s string) string {
	return reInlineMd.ReplaceAllString(s, "")
}
