package piece

import "github.com/dshills/ptedit/internal/engine/appendlog"

// Option configures a Table during creation.
type Option func(*Table)

// WithCopy makes the table own a private copy of the original bytes.
// Without it the table borrows the slice passed to New, which the caller
// must not modify afterwards.
func WithCopy() Option {
	return func(t *Table) {
		t.copyOriginal = true
	}
}

// WithMaxPieces caps the number of stored pieces. Zero means unlimited.
func WithMaxPieces(n int) Option {
	return func(t *Table) {
		if n >= 0 {
			t.maxPieces = n
		}
	}
}

// WithLogLimit caps the append log at n bytes. Zero means unlimited.
func WithLogLimit(n int) Option {
	return func(t *Table) {
		t.logOpts = append(t.logOpts, appendlog.WithLimit(n))
	}
}

// WithLogCapacity preallocates n bytes for the append log.
func WithLogCapacity(n int) Option {
	return func(t *Table) {
		t.logOpts = append(t.logOpts, appendlog.WithInitialCapacity(n))
	}
}
