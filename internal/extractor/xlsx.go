package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
)

// XLSXExtractor handles .xlsx workbooks. Each sheet becomes one section
// labeled with the sheet name; cell values within a row are joined with
// " | " so tabular context survives chunking.
type XLSXExtractor struct{}

type xlsxWorkbook struct {
	Sheets []xlsxSheetRef `xml:"sheets>sheet"`
}

type xlsxSheetRef struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type xlsxRels struct {
	Rels []xlsxRel `xml:"Relationship"`
}

type xlsxRel struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

type xlsxSharedStrings struct {
	Items []xlsxStringItem `xml:"si"`
}

type xlsxStringItem struct {
	Text string   `xml:"t"`
	Runs []string `xml:"r>t"`
}

func (si xlsxStringItem) value() string {
	if len(si.Runs) > 0 {
		return strings.Join(si.Runs, "")
	}
	return si.Text
}

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	Cells []xlsxCell `xml:"c"`
}

type xlsxCell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline string `xml:"is>t"`
}

func (e *XLSXExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	raw, err := io.ReadAll(r)
	if err != nil {
		return meta, nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return meta, nil, fmt.Errorf("open xlsx: %w", err)
	}

	title, author := readCoreProperties(zr)
	if title != "" {
		meta.Title = title
	}
	meta.Author = author

	var workbook xlsxWorkbook
	if err := decodeZipXML(zr, "xl/workbook.xml", &workbook); err != nil {
		return meta, nil, fmt.Errorf("parse workbook: %w", err)
	}

	// Workbook sheets reference their worksheet parts through rels.
	var rels xlsxRels
	sheetTargets := map[string]string{}
	if err := decodeZipXML(zr, "xl/_rels/workbook.xml.rels", &rels); err == nil {
		for _, rel := range rels.Rels {
			sheetTargets[rel.ID] = "xl/" + strings.TrimPrefix(rel.Target, "/xl/")
		}
	}

	var shared xlsxSharedStrings
	// Shared strings are optional; inline-only workbooks omit the part.
	_ = decodeZipXML(zr, "xl/sharedStrings.xml", &shared)

	var blocks []string
	for i, ref := range workbook.Sheets {
		target, ok := sheetTargets[ref.RID]
		if !ok {
			target = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}

		var ws xlsxWorksheet
		if err := decodeZipXML(zr, target, &ws); err != nil {
			continue
		}

		var text strings.Builder
		text.WriteString("[Sheet: " + ref.Name + "]\n")
		for _, row := range ws.Rows {
			var cells []string
			for _, c := range row.Cells {
				if v := cellValue(c, shared.Items); v != "" {
					cells = append(cells, v)
				}
			}
			if len(cells) > 0 {
				text.WriteString(strings.Join(cells, " | "))
				text.WriteString("\n")
			}
		}
		blocks = append(blocks, text.String())
	}

	return meta, makeSections(blocks), nil
}

func cellValue(c xlsxCell, shared []xlsxStringItem) string {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(c.Value)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return strings.TrimSpace(shared[idx].value())
	case "inlineStr":
		return strings.TrimSpace(c.Inline)
	default:
		return strings.TrimSpace(c.Value)
	}
}

// decodeZipXML unmarshals one named part of an OOXML package.
func decodeZipXML(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return xml.NewDecoder(rc).Decode(v)
	}
	return fmt.Errorf("missing part: %s", name)
}
