package migration

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrIncompatibleSchema indicates a state document this build cannot read.
	ErrIncompatibleSchema = constError("incompatible state schema")

	// ErrInvalidLegacyExport indicates an export that is not a browser storage dump.
	ErrInvalidLegacyExport = constError("invalid legacy export")

	// ErrImportDeclined indicates the user declined to replace existing state.
	ErrImportDeclined = constError("import declined")
)
