package extractor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
)

// CSVExtractor handles CSV files. Data rows are grouped into batches of 20
// per section, each labeled with the header row so a batch stays
// self-describing after chunking.
type CSVExtractor struct{}

const csvBatchSize = 20

func (e *CSVExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return meta, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return meta, nil, nil
	}

	headers := records[0]
	dataRows := records[1:]

	var blocks []string
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}
		blocks = append(blocks, text.String())
	}

	return meta, makeSections(blocks), nil
}
