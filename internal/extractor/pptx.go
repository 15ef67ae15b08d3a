package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
)

// PPTXExtractor handles .pptx presentations. Each slide becomes one
// section holding the slide's text runs in document order.
type PPTXExtractor struct{}

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func (e *PPTXExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	raw, err := io.ReadAll(r)
	if err != nil {
		return meta, nil, fmt.Errorf("read pptx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return meta, nil, fmt.Errorf("open pptx: %w", err)
	}

	title, author := readCoreProperties(zr)
	if title != "" {
		meta.Title = title
	}
	meta.Author = author

	type slidePart struct {
		num  int
		file *zip.File
	}
	var slides []slidePart
	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var blocks []string
	for _, s := range slides {
		text, err := slideText(s.file)
		if err != nil {
			continue
		}
		blocks = append(blocks, text)
	}
	sections := makeSections(blocks)
	meta.PageCount = len(slides)

	return meta, sections, nil
}

// slideText collects every DrawingML text run (<a:t>) in a slide part,
// one paragraph of runs per line.
func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var buf strings.Builder
	var line strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var run string
				if err := dec.DecodeElement(&run, &t); err != nil {
					return "", err
				}
				line.WriteString(run)
			}
		case xml.EndElement:
			// a:p closes a paragraph of runs.
			if t.Name.Local == "p" && line.Len() > 0 {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(line.String())
				line.Reset()
			}
		}
	}
	if line.Len() > 0 {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line.String())
	}
	return buf.String(), nil
}
