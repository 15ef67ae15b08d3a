package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docprep/internal/document"
)

// Worker processes a single document job through the engine, updating job
// status and progress as each phase completes.
type Worker struct {
	engine *Engine
	log    *slog.Logger
}

func NewWorker(engine *Engine, log *slog.Logger) *Worker {
	return &Worker{engine: engine, log: log}
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusExtracting, "extracting")
	meta, sections, err := w.engine.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extract failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetTotalSections(len(sections))

	job.SetStatus(StatusChunking, "chunking")
	chunks, err := w.engine.ChunkSections(ctx, sections, job.SetSectionsProcessed)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	job.SetResult(&document.Document{Metadata: meta, Chunks: chunks})
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "sections", len(sections), "chunks", len(chunks))
}
