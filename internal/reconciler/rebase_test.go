package reconciler

import "testing"

func TestRebaseBlocks(t *testing.T) {
	out := "\n### Transcription 1 START | t0 = 0 ms | t1 = 30000 ms\n" +
		"\n" +
		"[00:00:00.000 --> 00:00:03.360]   hello there\n" +
		"### Transcription 1 END\n" +
		"### Transcription 2 START | t0 = 30000 ms | t1 = 60000 ms\n" +
		"[00:00:01.000 --> 00:00:02.500]   second block\n"

	got := RebaseBlocks(out)
	want := "[00:00:00.000 --> 00:00:03.360] hello there\n" +
		"[00:00:31.000 --> 00:00:32.500] second block\n"
	if got != want {
		t.Errorf("RebaseBlocks() = %q, want %q", got, want)
	}
}

func TestRebaseBlocksWithoutHeader(t *testing.T) {
	in := "[00:00:01.000 --> 00:00:02.000] already absolute\n"
	if got := RebaseBlocks(in); got != in {
		t.Errorf("RebaseBlocks() = %q, want input unchanged", got)
	}
}
