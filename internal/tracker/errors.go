package tracker

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation errors returned by ValidateInput. Numeric input that is merely
// missing is defaulted instead; these cover values that cannot be defaulted.
var (
	// ErrUnknownCategory is returned in strict mode for an unrecognized category.
	ErrUnknownCategory = constError("unknown activity category")

	// ErrNegativeValue indicates a negative activity quantity.
	ErrNegativeValue = constError("negative activity value")

	// ErrInvalidValue indicates a NaN or infinite activity quantity.
	ErrInvalidValue = constError("invalid activity value")

	// ErrInvalidDate indicates a date that is neither YYYY-MM-DD nor RFC3339.
	ErrInvalidDate = constError("invalid activity date")
)
