// Package splitter cuts long text into overlapping, length-bounded chunks.
//
// Splitting is recursive: the text is cut at the coarsest separator present
// (paragraph, line, sentence, word) and any piece still over the chunk size
// is split again with the finer separators, down to single characters.
// Adjacent pieces are then merged back up to the chunk size, keeping up to
// the overlap of trailing context from the previous chunk.
package splitter

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/FlorentLa/obsidian-whisper/pkg/tokenizer"
)

// DefaultSeparators goes from paragraph to character boundaries.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

type Splitter struct {
	splitter textsplitter.RecursiveCharacter
}

// New returns a splitter measuring chunks with length.
// A nil length falls back to tokenizer.Estimate.
func New(chunkSize, chunkOverlap int, length tokenizer.LengthFunc) *Splitter {
	if length == nil {
		length = tokenizer.Estimate
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 2
	}
	return &Splitter{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators(DefaultSeparators),
			textsplitter.WithLenFunc(length),
		),
	}
}

// Split returns the chunks of text in order. Blank input yields no chunks.
func (s *Splitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	chunks, err := s.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
