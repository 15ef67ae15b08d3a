package chunker

import (
	"context"
	"errors"
	"testing"

	"github.com/dgallion1/docprep/internal/embedder"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = "recursive" }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"negative overlap", func(c *Config) { c.Overlap = -1 }},
		{"overlap equals chunk size", func(c *Config) { c.Overlap = c.ChunkSize }},
		{"overlap exceeds chunk size", func(c *Config) { c.Overlap = c.ChunkSize + 10 }},
		{"zero min chunk size", func(c *Config) { c.MinChunkSize = 0 }},
		{"max below min", func(c *Config) { c.MaxChunkSize = c.MinChunkSize - 1 }},
		{"percentile below range", func(c *Config) { c.BreakpointPercentile = -1 }},
		{"percentile above range", func(c *Config) { c.BreakpointPercentile = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestForStrategy(t *testing.T) {
	cfg := DefaultConfig()

	c, err := ForStrategy(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*FixedSize); !ok {
		t.Errorf("expected *FixedSize, got %T", c)
	}

	cfg.Strategy = StrategyParagraph
	c, err = ForStrategy(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*Paragraph); !ok {
		t.Errorf("expected *Paragraph, got %T", c)
	}
}

func TestForStrategy_SemanticRequiresEmbedder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategySemantic

	if _, err := ForStrategy(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig without embedder, got %v", err)
	}

	stub := &stubEmbedder{fn: func(texts []string) ([][]float64, error) {
		return make([][]float64, len(texts)), nil
	}}
	c, err := ForStrategy(cfg, stub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*Semantic); !ok {
		t.Errorf("expected *Semantic, got %T", c)
	}
}

func TestForStrategy_InvalidConfigRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = -5
	if _, err := ForStrategy(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// stubEmbedder lets tests script embedding responses.
type stubEmbedder struct {
	fn func(texts []string) ([][]float64, error)
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	return s.fn(texts)
}

var _ embedder.Embedder = (*stubEmbedder)(nil)
