package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dgallion1/docprep/internal/extractor"
)

// Batch walks an input directory, processes every supported file through
// the engine, and writes one JSON result per document to the output
// directory. A failure in one document never stops the run.
type Batch struct {
	engine    *Engine
	inputDir  string
	outputDir string
	workers   int
	log       *slog.Logger
}

// Summary reports batch results.
type Summary struct {
	Processed   int
	Failed      int
	TotalChunks int
}

func NewBatch(engine *Engine, inputDir, outputDir string, workers int, log *slog.Logger) *Batch {
	if workers <= 0 {
		workers = 1
	}
	return &Batch{
		engine:    engine,
		inputDir:  inputDir,
		outputDir: outputDir,
		workers:   workers,
		log:       log,
	}
}

// Discover returns the supported files under the input directory in
// sorted path order, so runs over the same tree are deterministic.
func (b *Batch) Discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(b.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if extractor.IsSupportedExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", b.inputDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all discovered files with the configured worker count.
func (b *Batch) Run(ctx context.Context) (Summary, error) {
	files, err := b.Discover()
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	b.log.Info("batch started", "files", len(files), "workers", b.workers)

	var processed, failed, totalChunks atomic.Int64
	paths := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				n, err := b.processFile(ctx, path)
				if err != nil {
					b.log.Error("document failed", "file", path, "error", err)
					failed.Add(1)
					continue
				}
				processed.Add(1)
				totalChunks.Add(int64(n))
			}
		}()
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			close(paths)
			wg.Wait()
			return Summary{}, ctx.Err()
		case paths <- path:
		}
	}
	close(paths)
	wg.Wait()

	summary := Summary{
		Processed:   int(processed.Load()),
		Failed:      int(failed.Load()),
		TotalChunks: int(totalChunks.Load()),
	}
	b.log.Info("batch finished",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"chunks", summary.TotalChunks)
	return summary, nil
}

func (b *Batch) processFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	doc, err := b.engine.Process(ctx, f, filepath.Base(path))
	if err != nil {
		return 0, err
	}

	if err := b.saveOutput(path, doc); err != nil {
		return 0, err
	}
	return len(doc.Chunks), nil
}

func (b *Batch) saveOutput(inputPath string, doc any) error {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	outPath := filepath.Join(b.outputDir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
