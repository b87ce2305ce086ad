package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "runs.sqlite"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{
		Source:     "meeting.txt",
		Transcript: "hello world\n",
		Summary:    "a greeting",
		Status:     StatusDone,
		Parsed:     3,
		Kept:       1,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if run.ID == "" {
		t.Fatal("SaveRun() did not assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("SaveRun() did not set CreatedAt")
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Source != run.Source || got.Transcript != run.Transcript || got.Summary != run.Summary {
		t.Errorf("GetRun() = %+v, want %+v", got, run)
	}
	if got.Status != StatusDone || got.Parsed != 3 || got.Kept != 1 || got.Error != "" {
		t.Errorf("GetRun() = %+v, want status done, 3 parsed, 1 kept", got)
	}
	if d := got.CreatedAt.Sub(run.CreatedAt); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun() error = %v, want ErrNotFound", err)
	}
}

func TestSaveRun_FailedKeepsError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{Source: "x.txt", Status: StatusFailed, Error: "model unreachable"}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Error != "model unreachable" {
		t.Errorf("Error = %q, want %q", got.Error, "model unreachable")
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		run := &Run{Source: name, Status: StatusDone, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", name, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].Source != "third" || runs[1].Source != "second" {
		t.Errorf("ListRuns() order = %s, %s, want third, second", runs[0].Source, runs[1].Source)
	}
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if err := s.SaveRun(context.Background(), &Run{Source: "m", Status: StatusDone}); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil || len(runs) != 1 {
		t.Errorf("ListRuns() = %d runs, %v, want 1", len(runs), err)
	}
}
