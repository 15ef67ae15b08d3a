package chunker

import (
	"strings"
	"testing"
)

func TestParagraphChunk_AccumulatesToMinSize(t *testing.T) {
	p1 := strings.Repeat("a", 60)
	p2 := strings.Repeat("b", 60)
	text := p1 + "\n\n" + p2

	chunks := ParagraphChunk(text, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != p1+"\n\n"+p2 {
		t.Errorf("expected paragraphs joined by blank line, got %q", chunks[0])
	}
}

func TestParagraphChunk_LargeParagraphsStandAlone(t *testing.T) {
	p1 := strings.Repeat("a", 150)
	p2 := strings.Repeat("b", 150)
	chunks := ParagraphChunk(p1+"\n\n"+p2, 100)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != p1 || chunks[1] != p2 {
		t.Error("expected each large paragraph as its own chunk")
	}
}

func TestParagraphChunk_TrailingShortMergedBack(t *testing.T) {
	p1 := strings.Repeat("a", 150)
	tail := "short tail"
	chunks := ParagraphChunk(p1+"\n\n"+tail, 100)

	if len(chunks) != 1 {
		t.Fatalf("expected trailing paragraph merged, got %d chunks", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n"+tail) {
		t.Errorf("expected tail appended to previous chunk, got %q", chunks[0])
	}
}

func TestParagraphChunk_SingleShortParagraph(t *testing.T) {
	chunks := ParagraphChunk("tiny", 100)
	if len(chunks) != 1 || chunks[0] != "tiny" {
		t.Errorf("expected single undersized chunk, got %q", chunks)
	}
}

func TestParagraphChunk_NoUpperBound(t *testing.T) {
	huge := strings.Repeat("x", 5000)
	chunks := ParagraphChunk(huge, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected one oversized chunk, got %d", len(chunks))
	}
	if len(chunks[0]) != 5000 {
		t.Errorf("expected paragraph kept whole, got %d chars", len(chunks[0]))
	}
}

func TestParagraphChunk_EmptyInput(t *testing.T) {
	if got := ParagraphChunk("", 100); got != nil {
		t.Errorf("expected nil, got %q", got)
	}
	if got := ParagraphChunk("\n\n\n\n", 100); got != nil {
		t.Errorf("expected nil for blank paragraphs, got %q", got)
	}
}
