package extractor

import (
	"fmt"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "*extractor.TextExtractor"},
		{"readme.md", "*extractor.MarkdownExtractor"},
		{"notes.markdown", "*extractor.MarkdownExtractor"},
		{"data.csv", "*extractor.CSVExtractor"},
		{"page.html", "*extractor.HTMLExtractor"},
		{"page.htm", "*extractor.HTMLExtractor"},
		{"paper.pdf", "*extractor.PDFExtractor"},
		{"report.docx", "*extractor.DOCXExtractor"},
		{"sheet.xlsx", "*extractor.XLSXExtractor"},
		{"slides.pptx", "*extractor.PPTXExtractor"},
		{"book.epub", "*extractor.EPUBExtractor"},
		{"REPORT.DOCX", "*extractor.DOCXExtractor"},
	}
	for _, tt := range tests {
		e, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got := fmt.Sprintf("%T", e); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_PDFFallbackOption(t *testing.T) {
	e, err := ForFile("paper.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.(*PDFExtractor).FallbackPdftotext {
		t.Error("expected pdftotext fallback enabled")
	}

	e, err = ForFile("paper.pdf", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.(*PDFExtractor).FallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"binary.exe", "archive.zip", "noextension"} {
		if _, err := ForFile(name, Options{}); err == nil {
			t.Errorf("%s: expected error for unsupported extension", name)
		} else if !strings.Contains(err.Error(), "unsupported file extension") {
			t.Errorf("%s: unexpected error text: %v", name, err)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("doc.pdf") || !IsSupportedExtension("DOC.PDF") {
		t.Error("expected pdf to be supported, case-insensitive")
	}
	if IsSupportedExtension("doc.exe") {
		t.Error("expected exe to be unsupported")
	}
}

func TestMakeSections(t *testing.T) {
	sections := makeSections([]string{"first", "  ", "", "second", "\tthird\n"})
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, want := range []string{"first", "second", "third"} {
		if sections[i].ID != i {
			t.Errorf("section %d: expected ID %d, got %d", i, i, sections[i].ID)
		}
		if sections[i].RawText != want {
			t.Errorf("section %d: expected %q, got %q", i, want, sections[i].RawText)
		}
	}
}
