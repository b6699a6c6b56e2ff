package buffer

import "github.com/dshills/ptedit/internal/engine/piece"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithMaxPieces caps the number of pieces the buffer's table may hold.
func WithMaxPieces(n int) Option {
	return func(b *Buffer) {
		b.tableOpts = append(b.tableOpts, piece.WithMaxPieces(n))
	}
}

// WithLogLimit caps the number of bytes the buffer may ever insert.
func WithLogLimit(n int) Option {
	return func(b *Buffer) {
		b.tableOpts = append(b.tableOpts, piece.WithLogLimit(n))
	}
}

// WithLogCapacity preallocates room for n inserted bytes.
func WithLogCapacity(n int) Option {
	return func(b *Buffer) {
		b.tableOpts = append(b.tableOpts, piece.WithLogCapacity(n))
	}
}
