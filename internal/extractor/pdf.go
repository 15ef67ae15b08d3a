package extractor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor handles PDF files. It tries the Go library first, then
// falls back to pdftotext when enabled and the library yields no text.
// Each page becomes one section.
type PDFExtractor struct {
	FallbackPdftotext bool
}

// pdfInfo is metadata from the document info dictionary and page tree.
type pdfInfo struct {
	Title  string
	Author string
	Pages  int
}

func (e *PDFExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docprep-pdf-*.pdf")
	if err != nil {
		return meta, nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return meta, nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, info, err := extractPDFText(tmpPath)
	if (err != nil || strings.TrimSpace(text) == "") && e.FallbackPdftotext {
		if out, fallbackErr := extractPdftotext(tmpPath); fallbackErr == nil {
			text, err = out, nil
		}
	}
	if err != nil {
		return meta, nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var blocks []string
	for _, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		blocks = append(blocks, page)
	}
	sections := makeSections(blocks)

	if info.Title != "" {
		meta.Title = info.Title
	}
	meta.Author = info.Author
	meta.PageCount = info.Pages
	if meta.PageCount == 0 {
		// pdftotext path: only the pages that produced text are known.
		meta.PageCount = len(sections)
	}

	return meta, sections, nil
}

func extractPDFText(path string) (string, pdfInfo, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", pdfInfo{}, err
	}
	defer f.Close()

	info := readPDFInfo(reader)
	var buf strings.Builder
	for i := 1; i <= info.Pages; i++ {
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(pageText(reader, i))
	}
	return buf.String(), info, nil
}

// readPDFInfo reads the page count and the info dictionary's Title and
// Author. Reader methods panic on some malformed files; recovery keeps
// whatever was read before the panic.
func readPDFInfo(reader *pdflib.Reader) (info pdfInfo) {
	defer func() { recover() }()
	info.Pages = reader.NumPage()
	dict := reader.Trailer().Key("Info")
	info.Title = strings.TrimSpace(dict.Key("Title").Text())
	info.Author = strings.TrimSpace(dict.Key("Author").Text())
	return info
}

func pageText(reader *pdflib.Reader, number int) (text string) {
	defer func() { recover() }()
	page := reader.Page(number)
	if page.V.IsNull() {
		return ""
	}
	t, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
