// Package engine is the application shell around the pure tracker and greenit
// reducers. Every operation takes the current state document and returns the
// next one; the engine itself holds no state besides its collaborators.
//
// Activity submission runs as an explicit pipeline of named stages
// (validate, compute, achievements, challenges, aggregate). Green IT
// calculations replace their slot, refresh the totals and hand a record to the
// ledger without waiting for it.
package engine

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

// Recorder accepts ledger records without blocking. *ledger.Dispatcher
// implements it.
type Recorder interface {
	Submit(rec ledger.Record) error
}

// Engine runs the aggregation operations.
type Engine struct {
	recorder Recorder
	strict   bool
	now      func() time.Time
	newID    func(time.Time) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder sends every Green IT calculation to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithStrictCategories makes unknown activity categories an error instead of
// a zero contribution.
func WithStrictCategories(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the ULID activity id generator.
func WithIDGenerator(newID func(time.Time) string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New returns an engine. Without options it uses the wall clock, ULID ids,
// lenient categories and no ledger.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: newULID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock reading.
func (e *Engine) Now() time.Time {
	return e.now()
}

func newULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

func operationLogger(ctx context.Context, operation string) *zerolog.Logger {
	l := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", operation).
		Logger()
	return &l
}
