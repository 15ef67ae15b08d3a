// Package config loads service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/dgallion1/docprep/internal/chunker"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8091"`

	// Auth
	APIKey string `env:"DOCPREP_API_KEY"`

	// Batch mode directories
	InputDir  string `env:"INPUT_DIR" envDefault:"data"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"output"`

	// Chunking defaults
	Strategy             string `env:"CHUNK_STRATEGY" envDefault:"fixed"`
	ChunkSize            int    `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap         int    `env:"CHUNK_OVERLAP" envDefault:"50"`
	MinChunkSize         int    `env:"MIN_CHUNK_SIZE" envDefault:"100"`
	MaxChunkSize         int    `env:"MAX_CHUNK_SIZE" envDefault:"1500"`
	BreakpointPercentile int    `env:"BREAKPOINT_PERCENTILE" envDefault:"80"`

	// Worker pool
	WorkerCount  int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int `env:"MAX_QUEUE_SIZE" envDefault:"100"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Job state
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`

	// Embedding provider
	OllamaURL  string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	EmbedModel string `env:"OLLAMA_EMBED_MODEL" envDefault:"nomic-embed-text"`

	// Word repair dictionary
	WordListPath string `env:"WORD_LIST_PATH" envDefault:"/usr/share/dict/words"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env values.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	return cfg, nil
}

// ChunkerConfig maps the chunking fields into a chunker.Config.
func (c Config) ChunkerConfig() chunker.Config {
	return chunker.Config{
		Strategy:             chunker.Strategy(c.Strategy),
		ChunkSize:            c.ChunkSize,
		Overlap:              c.ChunkOverlap,
		MinChunkSize:         c.MinChunkSize,
		MaxChunkSize:         c.MaxChunkSize,
		BreakpointPercentile: c.BreakpointPercentile,
	}
}

func (c Config) Validate() error {
	if err := c.ChunkerConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateService applies the extra requirements of running as an HTTP
// service. The batch CLI has no auth surface and stays key-free.
func (c Config) ValidateService() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("DOCPREP_API_KEY is required")
	}
	return nil
}
