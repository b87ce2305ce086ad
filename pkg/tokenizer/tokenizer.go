// Package tokenizer provides token-length functions used for chunk sizing
// and summary budgets. Counts are approximations; they drive size decisions
// only and never the content of the output.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LengthFunc maps text to a non-negative token count.
type LengthFunc func(text string) int

// charsPerToken is the average for llama-family vocabularies on English text.
const charsPerToken = 4

// Estimate approximates a llama tokenizer: one token per four characters,
// never fewer tokens than words.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	byChars := (utf8.RuneCountInString(text) + charsPerToken - 1) / charsPerToken
	if words := Words(text); words > byChars {
		return words
	}
	return byChars
}

// Words counts whitespace separated words.
func Words(text string) int {
	return len(strings.Fields(text))
}

// ByName returns the length function registered under name.
func ByName(name string) (LengthFunc, error) {
	switch strings.ToLower(name) {
	case "", "estimate":
		return Estimate, nil
	case "words":
		return Words, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}
