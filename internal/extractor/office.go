package extractor

import (
	"archive/zip"
	"encoding/xml"
)

// coreProperties is the shared OOXML metadata part (docProps/core.xml)
// carried by docx, xlsx and pptx packages alike.
type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
}

// readCoreProperties pulls title and author from an OOXML package.
// Missing or malformed metadata is not an error; extraction proceeds
// with filename-derived defaults.
func readCoreProperties(zr *zip.Reader) (title, author string) {
	for _, f := range zr.File {
		if f.Name != "docProps/core.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", ""
		}
		var props coreProperties
		err = xml.NewDecoder(rc).Decode(&props)
		rc.Close()
		if err != nil {
			return "", ""
		}
		return props.Title, props.Creator
	}
	return "", ""
}
