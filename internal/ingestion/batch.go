package ingestion

import (
	"context"

	"go-payslip/internal/payslip"
)

// DefaultBatchSize is deliberately below the transactional-write ceiling of
// the store to leave headroom for bookkeeping writes in the same commit.
const DefaultBatchSize = 450

// BatchWriter accumulates payslip records and flushes them in bounded,
// sequential, all-or-nothing commits. There is no cross-batch atomicity: when
// batch N fails, batches 1..N-1 stay persisted and N.. never run.
type BatchWriter struct {
	repo    payslip.Repository
	size    int
	buf     []payslip.Payslip
	commits int
	written int
}

func NewBatchWriter(repo payslip.Repository, size int) *BatchWriter {
	if size <= 0 || size > DefaultBatchSize {
		size = DefaultBatchSize
	}
	return &BatchWriter{
		repo: repo,
		size: size,
		buf:  make([]payslip.Payslip, 0, size),
	}
}

// Add buffers one record and flushes when the batch cap is reached. A flush
// error is the caller's signal to abort the run.
func (w *BatchWriter) Add(ctx context.Context, record payslip.Payslip) error {
	w.buf = append(w.buf, record)
	if len(w.buf) >= w.size {
		return w.Flush(ctx)
	}
	return nil
}

// Flush commits the current buffer, if any.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}

	if err := w.repo.CreateAll(ctx, w.buf); err != nil {
		return err
	}

	w.commits++
	w.written += len(w.buf)
	w.buf = w.buf[:0]
	return nil
}

func (w *BatchWriter) Commits() int {
	return w.commits
}

func (w *BatchWriter) Written() int {
	return w.written
}
