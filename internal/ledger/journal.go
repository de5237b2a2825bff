package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Journal is a SQLite-backed sink. Rows are inserted pending and flipped to
// verified once the insert has committed.
type Journal struct {
	*sql.DB
}

// OpenJournal opens (creating if needed) the journal database at path and
// ensures its schema.
func OpenJournal(ctx context.Context, path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db}
	if err = j.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) init(ctx context.Context) error {
	_, err := j.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			tx_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			data TEXT NOT NULL,
			hash TEXT NOT NULL,
			status TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating transactions table: %w", err)
	}

	_, err = j.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_transactions_kind_time
		ON transactions(kind, timestamp)
	`)
	if err != nil {
		return fmt.Errorf("creating transactions index: %w", err)
	}
	return nil
}

// Record implements Sink.
func (j *Journal) Record(ctx context.Context, rec Record) (Transaction, error) {
	if err := validate(rec); err != nil {
		return Transaction{}, err
	}
	tx := Transaction{Record: rec, Status: StatusPending, Hash: ContentHash(rec)}

	dbtx, err := j.BeginTx(ctx, nil)
	if err != nil {
		return Transaction{}, fmt.Errorf("beginning journal transaction: %w", err)
	}
	defer func() { _ = dbtx.Rollback() }()

	_, err = dbtx.ExecContext(ctx, `
		INSERT INTO transactions (tx_id, kind, data, hash, status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Type, string(rec.Data), tx.Hash, string(StatusPending), rec.Timestamp.UTC())
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
		}
		return Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}
	if err = dbtx.Commit(); err != nil {
		return Transaction{}, fmt.Errorf("committing transaction: %w", err)
	}

	if _, err = j.ExecContext(ctx,
		`UPDATE transactions SET status = ? WHERE tx_id = ?`,
		string(StatusVerified), rec.ID,
	); err != nil {
		return tx, fmt.Errorf("verifying transaction %s: %w", rec.ID, err)
	}
	tx.Status = StatusVerified
	return tx, nil
}

// List returns journaled transactions, newest first, at most limit when limit > 0.
func (j *Journal) List(ctx context.Context, limit int) ([]Transaction, error) {
	query := `
		SELECT tx_id, kind, data, hash, status, timestamp
		FROM transactions
		ORDER BY seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var (
			t      Transaction
			data   string
			status string
			ts     time.Time
		)
		if err = rows.Scan(&t.ID, &t.Type, &data, &t.Hash, &status, &ts); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.Data = []byte(data)
		t.Status = Status(status)
		t.Timestamp = ts.UTC()
		txs = append(txs, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return txs, nil
}

// Count returns the number of journaled transactions per status.
func (j *Journal) Count(ctx context.Context) (map[Status]int, error) {
	rows, err := j.QueryContext(ctx, `SELECT status, COUNT(*) FROM transactions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err = rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("counting transactions: %w", err)
		}
		counts[Status(status)] = n
	}
	return counts, rows.Err()
}
