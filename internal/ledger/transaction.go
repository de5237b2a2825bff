// Package ledger records calculations with an external "record calculation"
// sink. Recording is fire-and-forget for callers: a failing or slow sink never
// affects the figures the engine computes.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// AccountID is the account prefix of every transaction id.
const AccountID = "0.0.123456"

// Status of a recorded transaction.
type Status string

// Transaction statuses.
const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
)

// hashNamespace scopes the content hash of recorded payloads.
//
//nolint:gochecknoglobals // Constant namespace.
var hashNamespace = uuid.MustParse("6f1c3c8e-4b5d-4e0a-9a57-0d1e5c2b7a10")

// Record is what a caller hands to a sink: the calculation kind and its result.
type Record struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Transaction is a journaled record with its verification state.
type Transaction struct {
	Record
	Status Status `json:"status"`
	Hash   string `json:"hash"`
}

// Sink is the "record calculation" collaborator.
type Sink interface {
	Record(ctx context.Context, rec Record) (Transaction, error)
}

// FormatTransactionID builds an id of the form <account>@<unix ms>.<9 digits>.
func FormatTransactionID(now time.Time, nonce uint32) string {
	return fmt.Sprintf("%s@%d.%09d", AccountID, now.UnixMilli(), nonce%1_000_000_000)
}

// NewTransactionID builds a transaction id with a random nonce.
func NewTransactionID(now time.Time) string {
	return FormatTransactionID(now, rand.Uint32N(1_000_000_000))
}

// NewRecord marshals data into a record stamped with now.
func NewRecord(kind string, data any, now time.Time) (Record, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return Record{
		ID:        NewTransactionID(now),
		Type:      kind,
		Data:      raw,
		Timestamp: now.UTC(),
	}, nil
}

// ContentHash derives a stable hash of the record's kind and payload.
func ContentHash(rec Record) string {
	payload := make([]byte, 0, len(rec.Type)+1+len(rec.Data))
	payload = append(payload, rec.Type...)
	payload = append(payload, 0)
	payload = append(payload, rec.Data...)
	return uuid.NewSHA1(hashNamespace, payload).String()
}

func validate(rec Record) error {
	switch {
	case rec.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	case rec.Type == "":
		return fmt.Errorf("%w: missing type", ErrInvalidRecord)
	case !json.Valid(rec.Data):
		return fmt.Errorf("%w: data is not JSON", ErrInvalidRecord)
	}
	return nil
}
