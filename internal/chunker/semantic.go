package chunker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docprep/internal/embedder"
)

// Overlap used when an oversized semantic chunk falls back to the
// fixed-size splitter.
const semanticSplitOverlap = 50

// Semantic segments text at topic shifts detected from embedding
// similarity between adjacent sentences, then merges undersized and splits
// oversized groups so every chunk lands in [MinChunkSize, MaxChunkSize].
// Documents of two or fewer sentences are exempt from the size bounds and
// come back as a single chunk.
type Semantic struct {
	Embedder             embedder.Embedder
	BreakpointPercentile int
	MinChunkSize         int
	MaxChunkSize         int
}

func (s *Semantic) Chunk(ctx context.Context, text string) ([]string, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}
	if len(sentences) <= 2 {
		joined := strings.TrimSpace(strings.Join(sentences, " "))
		if joined == "" {
			return nil, nil
		}
		return []string{joined}, nil
	}

	vectors, err := s.Embedder.Embed(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("embed sentences: %w", err)
	}
	if len(vectors) != len(sentences) {
		return nil, fmt.Errorf("%w: got %d vectors for %d sentences",
			embedder.ErrResultMismatch, len(vectors), len(sentences))
	}

	similarities := make([]float64, len(sentences)-1)
	for i := range similarities {
		similarities[i] = CosineSimilarity(vectors[i], vectors[i+1])
	}

	breakpoints := DetectBreakpoints(similarities, s.BreakpointPercentile)
	raw := groupSentences(sentences, breakpoints)
	merged := mergeChunks(raw, s.MinChunkSize, s.MaxChunkSize)
	return splitOversized(merged, s.MaxChunkSize), nil
}

// DetectBreakpoints returns the strictly increasing sentence indices at
// which a chunk ends, each in [1, len(similarities)]. The threshold is the
// (100 - breakpointPercentile)th percentile of the similarity scores, so a
// higher percentile means a lower threshold and fewer breakpoints. A
// boundary is declared only on strict inequality; ties do not break.
func DetectBreakpoints(similarities []float64, breakpointPercentile int) []int {
	if len(similarities) == 0 {
		return nil
	}
	threshold := percentile(similarities, float64(100-breakpointPercentile))
	var breakpoints []int
	for i, sim := range similarities {
		if sim < threshold {
			breakpoints = append(breakpoints, i+1)
		}
	}
	return breakpoints
}

// groupSentences joins the sentences between consecutive breakpoints with
// single spaces, dropping empty groups.
func groupSentences(sentences []string, breakpoints []int) []string {
	var groups []string
	start := 0
	appendGroup := func(end int) {
		if end <= start {
			return
		}
		g := strings.TrimSpace(strings.Join(sentences[start:end], " "))
		if g != "" {
			groups = append(groups, g)
		}
		start = end
	}
	for _, bp := range breakpoints {
		appendGroup(bp)
	}
	appendGroup(len(sentences))
	return groups
}

// mergeChunks accumulates raw chunks into a buffer, flushing as soon as
// the buffer reaches minSize and starting a new buffer whenever appending
// would push it past maxSize. A final remainder below minSize is folded
// into the previous chunk instead of being emitted undersized.
func mergeChunks(raw []string, minSize, maxSize int) []string {
	var out []string
	var buf string
	bufLen := 0

	for _, c := range raw {
		cLen := utf8.RuneCountInString(c)
		switch {
		case buf == "":
			buf, bufLen = c, cLen
		case bufLen+1+cLen <= maxSize:
			buf += " " + c
			bufLen += 1 + cLen
		default:
			out = append(out, buf)
			buf, bufLen = c, cLen
		}
		if bufLen >= minSize {
			out = append(out, buf)
			buf, bufLen = "", 0
		}
	}

	if buf != "" {
		if bufLen < minSize && len(out) > 0 {
			out[len(out)-1] += " " + buf
		} else {
			out = append(out, buf)
		}
	}
	return out
}

// splitOversized re-splits any chunk longer than maxSize with the
// fixed-size strategy as a deterministic fallback, so semantic chunking
// never emits a chunk over maxSize outside the small-input exemption.
func splitOversized(chunks []string, maxSize int) []string {
	overlap := semanticSplitOverlap
	if overlap >= maxSize {
		// A very small maxSize would otherwise stall the fixed window.
		overlap = maxSize / 5
	}
	var out []string
	for _, c := range chunks {
		if utf8.RuneCountInString(c) <= maxSize {
			out = append(out, c)
			continue
		}
		out = append(out, FixedChunk(c, maxSize, overlap)...)
	}
	return out
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|), or 0 when either vector
// has zero norm.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// percentile computes the pth percentile of values with linear
// interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
