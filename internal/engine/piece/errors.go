package piece

import "errors"

// Errors returned by table operations.
var (
	// ErrOutOfRange indicates an index outside the valid range for the call.
	ErrOutOfRange = errors.New("index out of range")

	// ErrTooManyPieces indicates the edit would exceed the configured
	// piece ceiling.
	ErrTooManyPieces = errors.New("piece limit reached")

	// ErrClosed indicates the table has been closed.
	ErrClosed = errors.New("piece table closed")

	// ErrCorrupt is returned by Validate when an invariant does not hold.
	ErrCorrupt = errors.New("piece table corrupt")
)
