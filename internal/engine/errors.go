package engine

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrInvalidSetting indicates a settings update with a NaN, infinite or
	// negative value where none is allowed.
	ErrInvalidSetting = constError("invalid setting")

	// ErrUnknownQuickAction indicates a quick action for a category without one.
	ErrUnknownQuickAction = constError("no quick action for category")
)
