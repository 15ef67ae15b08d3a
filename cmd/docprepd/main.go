package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docprep/internal/api"
	"github.com/dgallion1/docprep/internal/chunker"
	"github.com/dgallion1/docprep/internal/config"
	"github.com/dgallion1/docprep/internal/embedder"
	"github.com/dgallion1/docprep/internal/extractor"
	"github.com/dgallion1/docprep/internal/normalizer"
	"github.com/dgallion1/docprep/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateService(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Word repair is optional; run without it when no word list exists.
	dict, err := normalizer.LoadDictionary(cfg.WordListPath)
	if err != nil {
		log.Warn("word list unavailable, broken-word repair disabled", "path", cfg.WordListPath, "error", err)
		dict = nil
	}
	norm := normalizer.New(dict)

	var ollama *embedder.OllamaClient
	var emb embedder.Embedder
	if cfg.Strategy == string(chunker.StrategySemantic) {
		ollama = embedder.NewOllamaClient(cfg.OllamaURL, cfg.EmbedModel)
		emb = ollama
	}

	chk, err := chunker.ForStrategy(cfg.ChunkerConfig(), emb)
	if err != nil {
		log.Error("invalid chunking configuration", "error", err)
		os.Exit(1)
	}

	engine := pipeline.NewEngine(norm, chk, extractor.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}, log)
	orch := pipeline.NewOrchestrator(engine, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, engine, ollama, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docprepd", "port", cfg.Port, "strategy", cfg.Strategy)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
