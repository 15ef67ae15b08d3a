// Package chunker splits normalized text into bounded, ordered chunks
// using one of three interchangeable strategies: fixed-size windows,
// paragraph accumulation, or embedding-similarity semantic segmentation.
package chunker

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgallion1/docprep/internal/embedder"
)

// Strategy selects a segmentation algorithm.
type Strategy string

const (
	StrategyFixed     Strategy = "fixed"
	StrategyParagraph Strategy = "paragraph"
	StrategySemantic  Strategy = "semantic"
)

// ErrInvalidConfig marks caller-supplied configuration outside documented
// bounds. It is surfaced immediately and never retried.
var ErrInvalidConfig = errors.New("invalid chunking config")

// Config controls chunking behavior. All sizes are in characters (runes).
type Config struct {
	Strategy Strategy

	// Fixed-size strategy: window size and overlap between windows.
	ChunkSize int
	Overlap   int

	// Paragraph and semantic strategies.
	MinChunkSize int
	MaxChunkSize int

	// Semantic strategy sensitivity in [0,100]. Higher values produce
	// fewer, larger chunks: the similarity threshold is taken at the
	// (100 - BreakpointPercentile)th percentile. The inverted naming is
	// a documented contract, not a bug.
	BreakpointPercentile int
}

// DefaultConfig returns the defaults the original pipeline shipped with.
func DefaultConfig() Config {
	return Config{
		Strategy:             StrategyFixed,
		ChunkSize:            500,
		Overlap:              50,
		MinChunkSize:         100,
		MaxChunkSize:         1500,
		BreakpointPercentile: 80,
	}
}

// Validate checks the documented bounds. A config that fails validation
// must not be passed to any chunker.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyFixed, StrategyParagraph, StrategySemantic:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap must be non-negative, got %d", ErrInvalidConfig, c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap (%d) must be less than chunk_size (%d)", ErrInvalidConfig, c.Overlap, c.ChunkSize)
	}
	if c.MinChunkSize <= 0 {
		return fmt.Errorf("%w: min_chunk_size must be positive, got %d", ErrInvalidConfig, c.MinChunkSize)
	}
	if c.MaxChunkSize < c.MinChunkSize {
		return fmt.Errorf("%w: max_chunk_size (%d) must be at least min_chunk_size (%d)", ErrInvalidConfig, c.MaxChunkSize, c.MinChunkSize)
	}
	if c.BreakpointPercentile < 0 || c.BreakpointPercentile > 100 {
		return fmt.Errorf("%w: breakpoint_percentile must be in [0,100], got %d", ErrInvalidConfig, c.BreakpointPercentile)
	}
	return nil
}

// Chunker produces an ordered list of chunk texts for one section of
// normalized text. Empty or whitespace-only input yields an empty list,
// never an error.
type Chunker interface {
	Chunk(ctx context.Context, text string) ([]string, error)
}

// ForStrategy returns the chunker for cfg. The semantic strategy requires
// an embedder; the other strategies ignore it.
func ForStrategy(cfg Config, emb embedder.Embedder) (Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Strategy {
	case StrategyFixed:
		return &FixedSize{ChunkSize: cfg.ChunkSize, Overlap: cfg.Overlap}, nil
	case StrategyParagraph:
		return &Paragraph{MinChunkSize: cfg.MinChunkSize}, nil
	case StrategySemantic:
		if emb == nil {
			return nil, fmt.Errorf("%w: semantic strategy requires an embedder", ErrInvalidConfig)
		}
		return &Semantic{
			Embedder:             emb,
			BreakpointPercentile: cfg.BreakpointPercentile,
			MinChunkSize:         cfg.MinChunkSize,
			MaxChunkSize:         cfg.MaxChunkSize,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, cfg.Strategy)
}
