package chunker

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Paragraph accumulates blank-line-delimited paragraphs until the
// accumulated length reaches MinChunkSize, then flushes them as one chunk.
// There is no upper bound: a single huge paragraph becomes one oversized
// chunk by design.
type Paragraph struct {
	MinChunkSize int
}

func (p *Paragraph) Chunk(_ context.Context, text string) ([]string, error) {
	return ParagraphChunk(text, p.MinChunkSize), nil
}

// ParagraphChunk splits text on blank lines and merges consecutive
// paragraphs into chunks of at least minChunkSize characters. A final
// undersized remainder is appended to the previous chunk when one exists.
func ParagraphChunk(text string, minChunkSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current []string
	currentLen := 0

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		current = append(current, para)
		currentLen += utf8.RuneCountInString(para)

		if currentLen >= minChunkSize {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = nil
			currentLen = 0
		}
	}

	if len(current) > 0 {
		tail := strings.Join(current, "\n\n")
		if len(chunks) > 0 && currentLen < minChunkSize {
			chunks[len(chunks)-1] += "\n\n" + tail
		} else {
			chunks = append(chunks, tail)
		}
	}

	return chunks
}
