package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemorySink keeps transactions in process memory. It backs tests and runs
// with the journal disabled.
type MemorySink struct {
	mu   sync.RWMutex
	txs  []Transaction
	seen map[string]struct{}

	// Fail, when set, is returned by every Record call.
	Fail error
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{seen: make(map[string]struct{})}
}

// Record implements Sink.
func (m *MemorySink) Record(_ context.Context, rec Record) (Transaction, error) {
	if err := validate(rec); err != nil {
		return Transaction{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return Transaction{}, m.Fail
	}
	if _, dup := m.seen[rec.ID]; dup {
		return Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}
	tx := Transaction{Record: rec, Status: StatusVerified, Hash: ContentHash(rec)}
	m.seen[rec.ID] = struct{}{}
	m.txs = append(m.txs, tx)
	return tx, nil
}

// List returns the recorded transactions, newest first, at most limit when limit > 0.
func (m *MemorySink) List(_ context.Context, limit int) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Transaction, 0, len(m.txs))
	for i := len(m.txs) - 1; i >= 0; i-- {
		out = append(out, m.txs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of recorded transactions.
func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}
