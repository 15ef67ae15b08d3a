package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docprep/internal/document"
)

func TestNewJob_ContentHashID(t *testing.T) {
	data := []byte("same bytes")
	a := NewJob("a.txt", data)
	b := NewJob("b.txt", data)

	if a.ID == "" {
		t.Fatal("expected non-empty job ID")
	}
	if a.ID != b.ID {
		t.Errorf("expected identical content to hash to the same ID, got %s and %s", a.ID, b.ID)
	}
	if c := NewJob("c.txt", []byte("other bytes")); c.ID == a.ID {
		t.Error("expected different content to hash to a different ID")
	}

	if a.Status != StatusQueued {
		t.Errorf("expected status queued, got %s", a.Status)
	}
	if string(a.FileData()) != "same bytes" {
		t.Errorf("expected file data preserved, got %q", a.FileData())
	}
}

func TestJob_StatusAndErrors(t *testing.T) {
	job := NewJob("doc.txt", []byte("data"))

	job.SetStatus(StatusExtracting, "extracting sections")
	if job.Status != StatusExtracting || job.Phase != "extracting sections" {
		t.Errorf("unexpected state: %s/%s", job.Status, job.Phase)
	}

	job.AddError("section 3 failed")
	job.AddError("section 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors in snapshot, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "section 3 failed" {
		t.Errorf("unexpected first error: %q", snap.Progress.Errors[0])
	}
}

func TestJob_Snapshot(t *testing.T) {
	job := NewJob("doc.txt", []byte("data"))
	job.SetTotalSections(5)
	job.SetSectionsProcessed(3)

	snap := job.Snapshot()
	if snap.ID != job.ID {
		t.Errorf("expected snapshot ID %s, got %s", job.ID, snap.ID)
	}
	if snap.Progress.TotalSections != 5 || snap.Progress.SectionsProcessed != 3 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}
	// Errors must serialize as an empty array, not null.
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJob_Result(t *testing.T) {
	job := NewJob("doc.txt", []byte("data"))
	if job.Result() != nil {
		t.Fatal("expected nil result before completion")
	}

	doc := &document.Document{
		Chunks: []document.Chunk{{ChunkID: 0, Text: "a"}, {ChunkID: 1, Text: "b"}},
	}
	job.SetResult(doc)

	if job.Result() != doc {
		t.Error("expected stored result returned")
	}
	if job.Snapshot().Progress.TotalChunks != 2 {
		t.Errorf("expected total chunks 2, got %d", job.Snapshot().Progress.TotalChunks)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc.txt", []byte("data"))
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Errorf("expected stored job, got %v", got)
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown ID, got %v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(time.Millisecond)
	job := NewJob("doc.txt", []byte("data"))
	store.Put(job)

	time.Sleep(5 * time.Millisecond)
	store.Cleanup()

	if got := store.Get(job.ID); got != nil {
		t.Error("expected expired job evicted")
	}
}

func TestJobStore_CleanupKeepsFresh(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc.txt", []byte("data"))
	store.Put(job)

	store.Cleanup()

	if got := store.Get(job.ID); got == nil {
		t.Error("expected fresh job kept")
	}
}

func TestContentHashHex(t *testing.T) {
	h := ContentHashHex([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(h))
	}
	if h != ContentHashHex([]byte("hello")) {
		t.Error("expected deterministic hash")
	}
}
