package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docpad/internal/docio"
	"github.com/dgallion1/docpad/internal/latency"
)

// Decoder turns uploaded file contents into annotated text.
// *docio.Service implements it.
type Decoder interface {
	DecodeBytes(ctx context.Context, filename string, data []byte) (*docio.Loaded, error)
}

// Worker processes a single decode job.
type Worker struct {
	decoder Decoder
	stats   *latency.Tracker
	log     *slog.Logger
}

func NewWorker(decoder Decoder, stats *latency.Tracker, log *slog.Logger) *Worker {
	return &Worker{
		decoder: decoder,
		stats:   stats,
		log:     log,
	}
}

// Process decodes the job's file and records the result on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	job.SetStatus(StatusDecoding, "decoding")
	start := time.Now()
	loaded, err := w.decoder.DecodeBytes(ctx, job.Filename, job.FileData())
	if w.stats != nil {
		w.stats.Observe(latency.OpDecode, start)
	}
	if err != nil {
		log.Error("decode failed", "error", err)
		job.AddError(fmt.Sprintf("decode: %s", err))
		job.SetStatus(StatusFailed, "decoding")
		return
	}

	if loaded.Cause != nil {
		job.AddError(fmt.Sprintf("structured decode: %s", loaded.Cause))
	}
	job.Complete(Result{
		Outcome: loaded.Outcome,
		Text:    loaded.Text,
		Charset: loaded.Charset,
	})
	log.Info("decode complete", "outcome", loaded.Outcome, "duration_ms", time.Since(start).Milliseconds())
}
