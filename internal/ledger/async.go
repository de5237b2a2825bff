package ledger

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrack/internal/logging"
)

// DefaultQueueSize is the buffer of the async dispatcher.
const DefaultQueueSize = 64

// Lister lists journaled transactions.
type Lister interface {
	List(ctx context.Context, limit int) ([]Transaction, error)
}

// DispatchStats counts dispatcher outcomes.
type DispatchStats struct {
	Submitted uint64 `json:"submitted"`
	Recorded  uint64 `json:"recorded"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Dispatcher hands records to a Sink on a background worker. Submit never
// blocks: when the queue is full the record is dropped and counted.
type Dispatcher struct {
	next   Sink
	queue  chan Record
	logger zerolog.Logger

	group *errgroup.Group

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool

	submitted atomic.Uint64
	recorded  atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher starts a worker that drains into next. The worker stops when
// Close is called or ctx is cancelled.
func NewDispatcher(ctx context.Context, next Sink, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	logger := logging.FromContext(ctx).With().Str("component", "ledger").Logger()

	g, gCtx := errgroup.WithContext(ctx)
	d := &Dispatcher{
		next:   next,
		queue:  make(chan Record, queueSize),
		logger: logger,
		group:  g,
	}
	g.Go(func() error {
		d.run(gCtx)
		return nil
	})
	return d
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case rec, ok := <-d.queue:
			if !ok {
				return
			}
			d.record(ctx, rec)
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, rec Record) {
	tx, err := d.next.Record(ctx, rec)
	if err != nil {
		d.failed.Add(1)
		d.logger.Warn().
			Err(err).
			Str("tx_id", rec.ID).
			Str("kind", rec.Type).
			Msg("ledger record failed")
		return
	}
	d.recorded.Add(1)
	d.logger.Debug().
		Str("tx_id", tx.ID).
		Str("kind", tx.Type).
		Str("status", string(tx.Status)).
		Msg("ledger record stored")
}

// Submit enqueues rec without blocking.
func (d *Dispatcher) Submit(rec Record) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrSinkClosed
	}
	d.submitted.Add(1)
	select {
	case d.queue <- rec:
	default:
		d.dropped.Add(1)
		d.logger.Warn().Str("tx_id", rec.ID).Msg("ledger queue full, record dropped")
	}
	return nil
}

// Close stops accepting records, drains the queue, and waits for the worker.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	return d.group.Wait()
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{
		Submitted: d.submitted.Load(),
		Recorded:  d.recorded.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}
