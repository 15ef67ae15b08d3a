// Package extractor converts raw document bytes into metadata plus an
// ordered list of text sections. Each format gets its own extractor;
// ForFile picks one by extension.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
)

// Extractor converts raw document bytes into metadata and ordered sections.
type Extractor interface {
	Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".xlsx":     true,
	".pptx":     true,
	".epub":     true,
}

// Options tunes extractor construction.
type Options struct {
	// PDFFallbackPdftotext enables shelling out to pdftotext when the
	// Go PDF reader cannot get text out of a file.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".xlsx":
		return &XLSXExtractor{}, nil
	case ".pptx":
		return &PPTXExtractor{}, nil
	case ".epub":
		return &EPUBExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// makeSections assigns sequential IDs to non-empty text blocks, keeping
// input order.
func makeSections(blocks []string) []document.Section {
	var sections []document.Section
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		sections = append(sections, document.Section{
			ID:      len(sections),
			RawText: b,
		})
	}
	return sections
}
