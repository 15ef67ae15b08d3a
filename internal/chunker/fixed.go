package chunker

import (
	"context"
	"strings"
)

// FixedSize slides a window of ChunkSize characters over the text,
// retreating each cut to the nearest preceding sentence end or newline
// when one falls past 30% of the window. Consecutive windows overlap by
// Overlap characters.
type FixedSize struct {
	ChunkSize int
	Overlap   int
}

func (f *FixedSize) Chunk(_ context.Context, text string) ([]string, error) {
	return FixedChunk(text, f.ChunkSize, f.Overlap), nil
}

// Retreat the cut only when it keeps a reasonable share of the window.
const minBoundaryShare = 0.3

// FixedChunk splits text into chunks of at most chunkSize characters with
// overlap characters shared between consecutive chunks. Chunks are trimmed
// and empty ones dropped.
func FixedChunk(text string, chunkSize, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + chunkSize
		sliceEnd := end
		if sliceEnd > len(runes) {
			sliceEnd = len(runes)
		}
		window := runes[start:sliceEnd]

		if end < len(runes) {
			breakPoint := lastIndexRunes(window, ". ")
			if nl := lastIndexRunes(window, "\n"); nl > breakPoint {
				breakPoint = nl
			}
			if float64(breakPoint) > float64(chunkSize)*minBoundaryShare {
				window = window[:breakPoint+1]
				end = start + breakPoint + 1
			}
		}

		if chunk := strings.TrimSpace(string(window)); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end < len(runes) {
			next := end - overlap
			// A boundary retreat can land the cut inside the overlap; the
			// window must always move forward.
			if next <= start {
				next = start + 1
			}
			start = next
		} else {
			start = end
		}
	}

	return chunks
}

func lastIndexRunes(window []rune, sep string) int {
	s := []rune(sep)
	for i := len(window) - len(s); i >= 0; i-- {
		match := true
		for j := range s {
			if window[i+j] != s[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
