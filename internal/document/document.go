package document

import (
	"path/filepath"
	"strings"
	"time"
)

// Metadata describes a source document. It is produced by the extractor and
// carried through the pipeline untouched.
type Metadata struct {
	Filename    string `json:"filename"`
	Filetype    string `json:"filetype"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	PageCount   int    `json:"page_count"`
	ProcessedAt string `json:"processed_at"`
}

// Section is one logical unit of a source document: a page, slide, sheet
// block, or heading-delimited block. Ordering is significant and preserved
// end-to-end.
type Section struct {
	ID      int
	RawText string
}

// Chunk is a bounded, non-empty piece of normalized text ready for embedding.
// ChunkID is document-local and monotonically increasing starting at 0.
type Chunk struct {
	ChunkID   int    `json:"chunk_id"`
	Text      string `json:"text"`
	SectionID int    `json:"section_id"`
}

// Document is the pipeline output for one source file.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Chunks   []Chunk  `json:"chunks"`
}

// NewMetadata builds the base metadata for a file. Extractors overwrite
// Title, Author and PageCount when the format provides them.
func NewMetadata(filename string) Metadata {
	ext := filepath.Ext(filename)
	return Metadata{
		Filename:    filename,
		Filetype:    strings.ToLower(strings.TrimPrefix(ext, ".")),
		Title:       strings.TrimSuffix(filename, ext),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
