package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks a batch run. It is safe for concurrent use.
type Progress struct {
	mu sync.RWMutex

	totalItems       int
	processedItems   int
	failedItems      int
	totalBatches     int
	processedBatches int
	startTime        time.Time
}

// NewProgress starts tracking a run of totalItems in totalBatches.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		startTime:    time.Now(),
	}
}

// Add records one finished batch of processed items, failed of which failed.
func (p *Progress) Add(processed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += processed
	p.failedItems += failed
	p.processedBatches++
}

// Snapshot is an immutable copy of the progress state.
type Snapshot struct {
	TotalItems       int           `json:"totalItems"`
	ProcessedItems   int           `json:"processedItems"`
	FailedItems      int           `json:"failedItems"`
	TotalBatches     int           `json:"totalBatches"`
	ProcessedBatches int           `json:"processedBatches"`
	Elapsed          time.Duration `json:"elapsed"`
}

// PercentComplete returns completion in [0, 100].
func (s Snapshot) PercentComplete() float64 {
	if s.TotalItems == 0 {
		return 0
	}
	return float64(s.ProcessedItems) / float64(s.TotalItems) * percentMultiplier
}

// Succeeded returns the processed items that did not fail.
func (s Snapshot) Succeeded() int {
	return s.ProcessedItems - s.FailedItems
}

// Complete reports whether every item was processed.
func (s Snapshot) Complete() bool {
	return s.ProcessedItems >= s.TotalItems
}

// Snapshot returns the current state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		FailedItems:      p.failedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		Elapsed:          time.Since(p.startTime),
	}
}
