package tokenizer

import "testing"

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short word", "hi", 1},
		{"eight chars", "abcdefgh", 2},
		{"many short words", "a b c d e", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	if got := Words("  the quick\nbrown\tfox "); got != 4 {
		t.Errorf("Words() = %d, want 4", got)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "estimate", "words", "WORDS"} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q) error = %v", name, err)
		}
	}
	if _, err := ByName("tiktoken"); err == nil {
		t.Error("ByName() should fail for unknown tokenizer")
	}
}
