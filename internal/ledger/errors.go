package ledger

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrInvalidRecord indicates a record without id, type or JSON payload.
	ErrInvalidRecord = constError("invalid ledger record")

	// ErrDuplicateRecord indicates a record id that was already journaled.
	ErrDuplicateRecord = constError("duplicate ledger record")

	// ErrSinkClosed indicates a submit after Close.
	ErrSinkClosed = constError("ledger sink closed")
)
