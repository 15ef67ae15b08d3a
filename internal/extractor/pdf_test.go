package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal one-page PDF with an info dictionary,
// recording object offsets as it writes so the xref table is exact.
func buildPDF(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 7)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	stream := "BT /F1 12 Tf 72 720 Td (Hello) Tj ET"
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(6, "<< /Title (Annual Report) /Author (Pat Author) >>")

	xref := buf.Len()
	buf.WriteString("xref\n0 7\n0000000000 65535 f \n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&buf, "%010d %05d n \n", offsets[i], 0)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 7 /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return bytes.NewReader(buf.Bytes())
}

func TestPDFExtractor_InfoDictionaryMetadata(t *testing.T) {
	e := &PDFExtractor{}
	meta, _, err := e.Extract(buildPDF(t), "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Title != "Annual Report" {
		t.Errorf("expected title from info dictionary, got %q", meta.Title)
	}
	if meta.Author != "Pat Author" {
		t.Errorf("expected author %q, got %q", "Pat Author", meta.Author)
	}
	if meta.PageCount != 1 {
		t.Errorf("expected page count 1, got %d", meta.PageCount)
	}
}

func TestPDFExtractor_NotAPDF(t *testing.T) {
	e := &PDFExtractor{}
	if _, _, err := e.Extract(strings.NewReader("plain text"), "broken.pdf"); err == nil {
		t.Fatal("expected error for non-pdf input")
	}
}
