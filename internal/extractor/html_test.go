package extractor

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_HeadingSections(t *testing.T) {
	input := `<html><head><title>Doc Title</title></head><body>
<h1>Heading One</h1>
<p>Para one.</p>
<h2>Heading Two</h2>
<p>Para two.</p>
</body></html>`

	e := &HTMLExtractor{}
	meta, sections, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Title != "Doc Title" {
		t.Errorf("expected title from <title>, got %q", meta.Title)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !strings.HasPrefix(sections[0].RawText, "Heading One") || !strings.Contains(sections[0].RawText, "Para one.") {
		t.Errorf("unexpected first section: %q", sections[0].RawText)
	}
	if !strings.HasPrefix(sections[1].RawText, "Heading Two") || !strings.Contains(sections[1].RawText, "Para two.") {
		t.Errorf("unexpected second section: %q", sections[1].RawText)
	}
}

func TestHTMLExtractor_SkipsNonContent(t *testing.T) {
	input := `<html><body>
<nav>Skip this nav</nav>
<script>var x = 1;</script>
<style>.a { color: red }</style>
<p>Keep this.</p>
</body></html>`

	e := &HTMLExtractor{}
	_, sections, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	text := sections[0].RawText
	if strings.Contains(text, "Skip this nav") || strings.Contains(text, "var x") || strings.Contains(text, "color: red") {
		t.Errorf("expected nav/script/style skipped, got %q", text)
	}
	if !strings.Contains(text, "Keep this.") {
		t.Errorf("expected paragraph kept, got %q", text)
	}
}

func TestHTMLExtractor_NoTitleFallsBackToFilename(t *testing.T) {
	e := &HTMLExtractor{}
	meta, _, err := e.Extract(strings.NewReader("<p>text</p>"), "nameless.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "nameless" {
		t.Errorf("expected filename-derived title, got %q", meta.Title)
	}
}
