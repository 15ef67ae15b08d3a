package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docprep/internal/chunker"
	"github.com/dgallion1/docprep/internal/config"
	"github.com/dgallion1/docprep/internal/embedder"
	"github.com/dgallion1/docprep/internal/extractor"
	"github.com/dgallion1/docprep/internal/normalizer"
	"github.com/dgallion1/docprep/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override environment configuration.
	flag.StringVar(&cfg.InputDir, "input", cfg.InputDir, "input directory to walk")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "output directory for JSON results")
	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "chunking strategy: fixed, paragraph, semantic")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "fixed-size chunk length in characters")
	flag.IntVar(&cfg.ChunkOverlap, "overlap", cfg.ChunkOverlap, "fixed-size chunk overlap in characters")
	flag.IntVar(&cfg.MinChunkSize, "min-chunk-size", cfg.MinChunkSize, "minimum chunk length in characters")
	flag.IntVar(&cfg.MaxChunkSize, "max-chunk-size", cfg.MaxChunkSize, "maximum chunk length in characters")
	flag.IntVar(&cfg.BreakpointPercentile, "breakpoint-percentile", cfg.BreakpointPercentile, "semantic breakpoint percentile in [0,100]")
	flag.IntVar(&cfg.WorkerCount, "workers", cfg.WorkerCount, "concurrent documents")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dict, err := normalizer.LoadDictionary(cfg.WordListPath)
	if err != nil {
		log.Warn("word list unavailable, broken-word repair disabled", "path", cfg.WordListPath, "error", err)
		dict = nil
	}
	norm := normalizer.New(dict)

	var emb embedder.Embedder
	if cfg.Strategy == string(chunker.StrategySemantic) {
		emb = embedder.NewOllamaClient(cfg.OllamaURL, cfg.EmbedModel)
	}

	chk, err := chunker.ForStrategy(cfg.ChunkerConfig(), emb)
	if err != nil {
		log.Error("invalid chunking configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := pipeline.NewEngine(norm, chk, extractor.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}, log)
	batch := pipeline.NewBatch(engine, cfg.InputDir, cfg.OutputDir, cfg.WorkerCount, log)

	summary, err := batch.Run(ctx)
	if err != nil {
		log.Error("batch run failed", "error", err)
		os.Exit(1)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
