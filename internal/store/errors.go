package store

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrStateCorrupted indicates the state file exists but is not a valid document.
	// Callers should abort unless the user explicitly forces a reset.
	ErrStateCorrupted = constError("state file corrupted")

	// ErrLocked indicates the lockfile could not be acquired.
	ErrLocked = constError("state file locked by another process")
)
