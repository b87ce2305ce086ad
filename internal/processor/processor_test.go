package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/config"
	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/internal/notify"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/store"
)

type fakeSummarizer struct {
	got     string
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.got = text
	return f.summary, f.err
}
func (f *fakeSummarizer) Densify(ctx context.Context, text string) (string, error) {
	return f.Summarize(ctx, text)
}
func (f *fakeSummarizer) TLDR(ctx context.Context, text string) (string, error) {
	return f.Summarize(ctx, text)
}
func (f *fakeSummarizer) Deduplicate(ctx context.Context, text string) (string, error) {
	return text, nil
}

type recordingPublisher struct {
	events []notify.RunCompleted
}

func (r *recordingPublisher) Publish(ctx context.Context, event notify.RunCompleted) error {
	r.events = append(r.events, event)
	return nil
}
func (r *recordingPublisher) Close() {}

const rawTranscript = "[00:00:00.000 --> 00:00:03.000] hello world\n" +
	"[00:00:01.000 --> 00:00:02.000] hello\n" +
	"[00:00:04.000 --> 00:00:05.000] the quick brown\n" +
	"[00:00:05.000 --> 00:00:06.000] the quick brown fox\n"

type fixture struct {
	cfg  *config.Config
	sum  *fakeSummarizer
	runs *store.Store
	pub  *recordingPublisher
	proc Processor
}

func newFixture(t *testing.T, rebase bool) *fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:    filepath.Join(dir, "input"),
			Output:   filepath.Join(dir, "output"),
			Archived: filepath.Join(dir, "archived"),
		},
		Reconciler: config.ReconcilerConfig{ToleranceMs: 100, RebaseBlocks: &rebase},
	}
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { runs.Close() })

	f := &fixture{
		cfg:  cfg,
		sum:  &fakeSummarizer{summary: "people greet each other"},
		runs: runs,
		pub:  &recordingPublisher{},
	}
	log := logger.Discard()
	f.proc = New(cfg, reconciler.New(cfg.Reconciler.ToleranceMs, log), f.sum, runs, f.pub, log)
	return f
}

func TestRun(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	run, err := f.proc.Run(ctx, "standup", rawTranscript)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantTranscript := "hello world\nthe quick brown fox\n"
	if run.Transcript != wantTranscript {
		t.Errorf("Transcript = %q, want %q", run.Transcript, wantTranscript)
	}
	if f.sum.got != wantTranscript {
		t.Errorf("summarizer got %q, want the clean transcript", f.sum.got)
	}
	if run.Parsed != 4 || run.Kept != 2 {
		t.Errorf("Parsed, Kept = %d, %d, want 4, 2", run.Parsed, run.Kept)
	}
	if run.Status != store.StatusDone || run.Summary != "people greet each other" {
		t.Errorf("run = %+v, want done with summary", run)
	}

	saved, err := f.runs.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if saved.Summary != run.Summary {
		t.Errorf("saved summary = %q, want %q", saved.Summary, run.Summary)
	}

	if len(f.pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(f.pub.events))
	}
	if ev := f.pub.events[0]; ev.RunID != run.ID || ev.Status != store.StatusDone || ev.Kept != 2 {
		t.Errorf("event = %+v", ev)
	}
}

func TestRun_SummarizeFailureIsRecorded(t *testing.T) {
	f := newFixture(t, true)
	errModel := errors.New("model unreachable")
	f.sum.err = errModel
	ctx := context.Background()

	run, err := f.proc.Run(ctx, "standup", rawTranscript)
	if !errors.Is(err, errModel) {
		t.Fatalf("Run() error = %v, want %v", err, errModel)
	}
	if run == nil || run.Status != store.StatusFailed {
		t.Fatalf("run = %+v, want failed run", run)
	}

	saved, err := f.runs.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if !strings.Contains(saved.Error, "model unreachable") {
		t.Errorf("saved error = %q", saved.Error)
	}
	if len(f.pub.events) != 1 || f.pub.events[0].Status != store.StatusFailed {
		t.Errorf("events = %+v, want one failed event", f.pub.events)
	}
}

func TestRun_RebasesStreamBlocks(t *testing.T) {
	raw := "### Transcription 1 START | t0 = 0 ms | t1 = 10000 ms\n" +
		"[00:00:00.000 --> 00:00:02.000] first block\n" +
		"### Transcription 1 END\n" +
		"### Transcription 2 START | t0 = 10000 ms | t1 = 20000 ms\n" +
		"[00:00:00.000 --> 00:00:02.000] second block\n"

	for _, rebase := range []bool{true, false} {
		f := newFixture(t, rebase)
		run, err := f.proc.Run(context.Background(), "stream", raw)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		want := "first block\nsecond block\n"
		if !rebase {
			// both blocks start at zero, so the longer second line covers the first
			want = "second block\n"
		}
		if run.Transcript != want {
			t.Errorf("rebase=%v: Transcript = %q, want %q", rebase, run.Transcript, want)
		}
	}
}

func TestProcess(t *testing.T) {
	f := newFixture(t, true)
	path := filepath.Join(f.cfg.Paths.Input, "standup.txt")
	if err := os.WriteFile(path, []byte(rawTranscript), 0644); err != nil {
		t.Fatal(err)
	}

	if err := f.proc.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	summary, err := os.ReadFile(filepath.Join(f.cfg.Paths.Output, "standup.summary.md"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	wantSummary := "# insights\npeople greet each other\n# original transcript\nhello world\nthe quick brown fox\n"
	if string(summary) != wantSummary {
		t.Errorf("summary.md = %q, want %q", summary, wantSummary)
	}

	transcript, err := os.ReadFile(filepath.Join(f.cfg.Paths.Output, "standup.transcript.md"))
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.HasPrefix(string(transcript), "Transcription started at ") ||
		!strings.HasSuffix(string(transcript), "hello world\nthe quick brown fox\n") {
		t.Errorf("transcript.md = %q", transcript)
	}

	for _, name := range []string{"standup.summary.docx", "standup.transcript.docx"} {
		if _, err := os.Stat(filepath.Join(f.cfg.Paths.Output, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("raw transcript still in input folder")
	}
	if _, err := os.Stat(filepath.Join(f.cfg.Paths.Archived, "standup.txt")); err != nil {
		t.Errorf("raw transcript not archived: %v", err)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	f := newFixture(t, true)
	if err := f.proc.Process(context.Background(), filepath.Join(f.cfg.Paths.Input, "nope.txt")); err == nil {
		t.Error("Process() expected error for missing file")
	}
}

func TestMoveToArchived_KeepsExisting(t *testing.T) {
	f := newFixture(t, true)
	p := f.proc.(*implProcessor)
	p.now = func() time.Time { return time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC) }

	if err := os.MkdirAll(f.cfg.Paths.Archived, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(f.cfg.Paths.Archived, "a.txt"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(f.cfg.Paths.Input, "a.txt")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := p.moveToArchived(context.Background(), src); err != nil {
		t.Fatalf("moveToArchived() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(f.cfg.Paths.Archived, "a-20240203-040506.txt"))
	if err != nil || string(got) != "new" {
		t.Errorf("archived copy = %q, %v, want new", got, err)
	}
	old, _ := os.ReadFile(filepath.Join(f.cfg.Paths.Archived, "a.txt"))
	if string(old) != "old" {
		t.Errorf("existing archive overwritten: %q", old)
	}
}
