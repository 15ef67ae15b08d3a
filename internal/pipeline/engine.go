// Package pipeline wires extraction, normalization and chunking into a
// per-document engine, plus a batch runner and an async job orchestrator
// on top of it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/docprep/internal/chunker"
	"github.com/dgallion1/docprep/internal/document"
	"github.com/dgallion1/docprep/internal/extractor"
	"github.com/dgallion1/docprep/internal/normalizer"
)

// Engine processes one document end to end: extract sections, normalize
// each, chunk each, and assign document-local chunk IDs. Safe for
// concurrent use.
type Engine struct {
	norm *normalizer.Normalizer
	chk  chunker.Chunker
	ext  extractor.Options
	log  *slog.Logger
}

func NewEngine(norm *normalizer.Normalizer, chk chunker.Chunker, ext extractor.Options, log *slog.Logger) *Engine {
	return &Engine{norm: norm, chk: chk, ext: ext, log: log}
}

// Extract picks an extractor by filename and reads metadata and sections.
func (e *Engine) Extract(r io.Reader, filename string) (document.Metadata, []document.Section, error) {
	ext, err := extractor.ForFile(filename, e.ext)
	if err != nil {
		return document.Metadata{}, nil, err
	}
	return ext.Extract(r, filename)
}

// ChunkSections normalizes and chunks sections in order. Chunk IDs are
// document-local, monotonically increasing from 0 in section order.
// Sections that normalize to empty text are skipped. onSection, when
// non-nil, is called after each section completes.
func (e *Engine) ChunkSections(ctx context.Context, sections []document.Section, onSection func(done int)) ([]document.Chunk, error) {
	chunks := []document.Chunk{}
	for i, sec := range sections {
		normalized := e.norm.Normalize(sec.RawText)
		if normalized != "" {
			texts, err := e.chk.Chunk(ctx, normalized)
			if err != nil {
				return nil, fmt.Errorf("chunk section %d: %w", sec.ID, err)
			}
			for _, t := range texts {
				chunks = append(chunks, document.Chunk{
					ChunkID:   len(chunks),
					Text:      t,
					SectionID: sec.ID,
				})
			}
		}
		if onSection != nil {
			onSection(i + 1)
		}
	}
	return chunks, nil
}

// Process runs the full pipeline for a single document.
func (e *Engine) Process(ctx context.Context, r io.Reader, filename string) (*document.Document, error) {
	meta, sections, err := e.Extract(r, filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	chunks, err := e.ChunkSections(ctx, sections, nil)
	if err != nil {
		return nil, err
	}

	e.log.Debug("document processed",
		"filename", filename,
		"sections", len(sections),
		"chunks", len(chunks))

	return &document.Document{Metadata: meta, Chunks: chunks}, nil
}
