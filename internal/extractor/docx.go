package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Heading-styled paragraphs delimit
// sections; body paragraphs accumulate under the preceding heading.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	// go-docx needs a ReadSeeker+size, and core.xml needs a second pass,
	// so buffer the package once.
	raw, err := io.ReadAll(r)
	if err != nil {
		return meta, nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return meta, nil, fmt.Errorf("parse docx: %w", err)
	}

	if zr, zerr := zip.NewReader(bytes.NewReader(raw), int64(len(raw))); zerr == nil {
		title, author := readCoreProperties(zr)
		if title != "" {
			meta.Title = title
		}
		meta.Author = author
	}

	var blocks []string
	var current strings.Builder

	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			blocks = append(blocks, current.String())
		}
		current.Reset()
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		level := docxHeadingLevel(para)
		text := docxParagraphText(para)

		if level > 0 && text != "" {
			flush()
			current.WriteString(text)
		} else if text != "" {
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(text)
		}
	}
	flush()

	return meta, makeSections(blocks), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
