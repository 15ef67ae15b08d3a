package extractor

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_HeadingSections(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

## Section B

Section B content.
`
	e := &MarkdownExtractor{}
	meta, sections, err := e.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Title != "Title" {
		t.Errorf("expected title from first heading, got %q", meta.Title)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if !strings.HasPrefix(sections[0].RawText, "Title") || !strings.Contains(sections[0].RawText, "Intro text.") {
		t.Errorf("unexpected first section: %q", sections[0].RawText)
	}
	if !strings.HasPrefix(sections[1].RawText, "Section A") || !strings.Contains(sections[1].RawText, "Section A content.") {
		t.Errorf("unexpected second section: %q", sections[1].RawText)
	}
	if !strings.HasPrefix(sections[2].RawText, "Section B") {
		t.Errorf("unexpected third section: %q", sections[2].RawText)
	}
}

func TestMarkdownExtractor_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	e := &MarkdownExtractor{}
	meta, sections, err := e.Extract(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Title falls back to the filename stem.
	if meta.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", meta.Title)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section for headingless markdown, got %d", len(sections))
	}
	text := sections[0].RawText
	if !strings.Contains(text, "Just some plain text.") || !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("expected both paragraphs in section, got %q", text)
	}
}

func TestMarkdownExtractor_CodeBlocksIncluded(t *testing.T) {
	input := "# API\n\n```\nGET /api/users\n```\n\nAfter code.\n"
	e := &MarkdownExtractor{}
	_, sections, err := e.Extract(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].RawText, "GET /api/users") {
		t.Errorf("expected code block content, got %q", sections[0].RawText)
	}
	if !strings.Contains(sections[0].RawText, "After code.") {
		t.Errorf("expected post-code text, got %q", sections[0].RawText)
	}
}

func TestMarkdownExtractor_EmptyInput(t *testing.T) {
	e := &MarkdownExtractor{}
	_, sections, err := e.Extract(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(sections))
	}
}
