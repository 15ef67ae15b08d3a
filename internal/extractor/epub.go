package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dgallion1/docprep/internal/document"
	"golang.org/x/net/html"
)

// EPUBExtractor handles .epub books. Spine order drives section order;
// each XHTML content document becomes one section.
type EPUBExtractor struct{}

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Metadata struct {
		Title   string `xml:"title"`
		Creator string `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

func (e *EPUBExtractor) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	meta := document.NewMetadata(filename)

	raw, err := io.ReadAll(r)
	if err != nil {
		return meta, nil, fmt.Errorf("read epub: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return meta, nil, fmt.Errorf("open epub: %w", err)
	}

	var container epubContainer
	if err := decodeZipXML(zr, "META-INF/container.xml", &container); err != nil {
		return meta, nil, fmt.Errorf("parse container: %w", err)
	}
	if len(container.Rootfiles) == 0 {
		return meta, nil, fmt.Errorf("epub container has no rootfile")
	}
	opfPath := container.Rootfiles[0].FullPath

	var pkg epubPackage
	if err := decodeZipXML(zr, opfPath, &pkg); err != nil {
		return meta, nil, fmt.Errorf("parse package: %w", err)
	}

	if pkg.Metadata.Title != "" {
		meta.Title = pkg.Metadata.Title
	}
	meta.Author = pkg.Metadata.Creator

	hrefByID := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		hrefByID[item.ID] = item.Href
	}

	// Content document paths are relative to the OPF location.
	opfDir := path.Dir(opfPath)

	var blocks []string
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefByID[ref.IDRef]
		if !ok {
			continue
		}
		partPath := href
		if opfDir != "." {
			partPath = path.Join(opfDir, href)
		}
		text, err := epubPartText(zr, partPath)
		if err != nil {
			continue
		}
		blocks = append(blocks, text)
	}

	return meta, makeSections(blocks), nil
}

// epubPartText extracts plain text from an XHTML content document,
// paragraph and heading blocks separated by blank lines.
func epubPartText(zr *zip.Reader, name string) (string, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		doc, err := html.Parse(rc)
		if err != nil {
			return "", err
		}

		var blocks []string
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.ElementNode {
				switch n.Data {
				case "script", "style":
					return
				case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "blockquote":
					if t := textContent(n); t != "" {
						blocks = append(blocks, t)
					}
					return
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(doc)

		return strings.Join(blocks, "\n\n"), nil
	}
	return "", fmt.Errorf("missing part: %s", name)
}
