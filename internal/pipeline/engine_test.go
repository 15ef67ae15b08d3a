package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/docprep/internal/chunker"
	"github.com/dgallion1/docprep/internal/document"
	"github.com/dgallion1/docprep/internal/extractor"
	"github.com/dgallion1/docprep/internal/normalizer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *Engine {
	return NewEngine(
		normalizer.New(nil),
		&chunker.FixedSize{ChunkSize: 500, Overlap: 50},
		extractor.Options{},
		testLogger(),
	)
}

func TestEngine_Process(t *testing.T) {
	input := "First paragraph with some text.\n\nSecond paragraph with more text."

	doc, err := testEngine().Process(context.Background(), strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Metadata.Filename != "notes.txt" {
		t.Errorf("expected filename notes.txt, got %q", doc.Metadata.Filename)
	}
	if doc.Metadata.Filetype != "txt" {
		t.Errorf("expected filetype txt, got %q", doc.Metadata.Filetype)
	}
	if len(doc.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(doc.Chunks))
	}
	for i, c := range doc.Chunks {
		if c.ChunkID != i {
			t.Errorf("expected chunk ID %d, got %d", i, c.ChunkID)
		}
	}
	if doc.Chunks[0].SectionID != 0 || doc.Chunks[1].SectionID != 1 {
		t.Errorf("expected section IDs 0 and 1, got %d and %d",
			doc.Chunks[0].SectionID, doc.Chunks[1].SectionID)
	}
}

func TestEngine_Process_UnsupportedExtension(t *testing.T) {
	_, err := testEngine().Process(context.Background(), strings.NewReader("x"), "file.xyz")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestEngine_ChunkSections_SkipsEmptyNormalized(t *testing.T) {
	// The middle section is page-number noise and normalizes to empty.
	sections := []document.Section{
		{ID: 0, RawText: "Real content in the first section."},
		{ID: 1, RawText: "- 3 -"},
		{ID: 2, RawText: "Real content in the last section."},
	}

	chunks, err := testEngine().ChunkSections(context.Background(), sections, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].SectionID != 0 || chunks[1].SectionID != 2 {
		t.Errorf("expected section IDs 0 and 2, got %d and %d",
			chunks[0].SectionID, chunks[1].SectionID)
	}
	// Chunk IDs stay contiguous even when sections are skipped.
	if chunks[0].ChunkID != 0 || chunks[1].ChunkID != 1 {
		t.Errorf("expected chunk IDs 0 and 1, got %d and %d",
			chunks[0].ChunkID, chunks[1].ChunkID)
	}
}

func TestEngine_ChunkSections_ReportsProgress(t *testing.T) {
	sections := []document.Section{
		{ID: 0, RawText: "One."},
		{ID: 1, RawText: "Two."},
		{ID: 2, RawText: "Three."},
	}

	var calls []int
	_, err := testEngine().ChunkSections(context.Background(), sections, func(done int) {
		calls = append(calls, done)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 3 || calls[0] != 1 || calls[2] != 3 {
		t.Errorf("expected progress calls 1..3, got %v", calls)
	}
}

type failingChunker struct{ err error }

func (f *failingChunker) Chunk(_ context.Context, _ string) ([]string, error) {
	return nil, f.err
}

func TestEngine_ChunkSections_PropagatesChunkerError(t *testing.T) {
	chunkErr := errors.New("embed backend down")
	eng := NewEngine(normalizer.New(nil), &failingChunker{err: chunkErr}, extractor.Options{}, testLogger())

	sections := []document.Section{{ID: 0, RawText: "Some text."}}
	_, err := eng.ChunkSections(context.Background(), sections, nil)
	if !errors.Is(err, chunkErr) {
		t.Fatalf("expected wrapped chunker error, got %v", err)
	}
}
