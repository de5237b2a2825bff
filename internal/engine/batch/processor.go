package batch

import (
	"context"
	"fmt"
)

// Batch size bounds.
const (
	DefaultBatchSize = 50
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	ErrInvalidBatchSize = constError("batch size must be between 1 and 1000")
	ErrNilCallback      = constError("batch callback cannot be nil")
	ErrEmptyItems       = constError("items slice cannot be empty")
)

// Callback processes one batch. It returns how many items of the batch
// failed; a non-nil error aborts the run.
type Callback[T any] func(ctx context.Context, batch []T, batchIndex int) (failed int, err error)

// ProgressCallback observes progress after each batch.
type ProgressCallback func(snapshot Snapshot)

// Processor runs a callback over fixed-size batches, in order.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// WithProgressCallback sets the progress observer.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Process runs callback over items batch by batch. Batches run sequentially
// because each one folds into the state left by the previous one. It stops
// at the first callback error or when ctx is cancelled, returning the
// progress reached so far.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) (Snapshot, error) {
	if len(items) == 0 {
		return Snapshot{}, ErrEmptyItems
	}
	if callback == nil {
		return Snapshot{}, ErrNilCallback
	}

	bounds := p.Batches(len(items))
	progress := NewProgress(len(items), len(bounds))

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return progress.Snapshot(), err
		}

		failed, err := callback(ctx, items[b[0]:b[1]], i)
		if err != nil {
			return progress.Snapshot(), fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress.Add(b[1]-b[0], failed)
		if p.onProgress != nil {
			p.onProgress(progress.Snapshot())
		}
	}
	return progress.Snapshot(), nil
}

// Batches returns the [start, end) bounds of each batch for total items.
func (p *Processor[T]) Batches(total int) [][2]int {
	if total <= 0 {
		return nil
	}
	n := (total + p.batchSize - 1) / p.batchSize
	out := make([][2]int, n)
	for i := range n {
		start := i * p.batchSize
		out[i] = [2]int{start, min(start+p.batchSize, total)}
	}
	return out
}
