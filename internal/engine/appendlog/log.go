package appendlog

import (
	"errors"
	"fmt"
)

// Growth parameters.
const (
	MinCapacity  = 256
	GrowthFactor = 2
)

// Errors returned by log operations.
var (
	// ErrLimitExceeded indicates the append would grow the log past its limit.
	// Nothing is written when it is returned.
	ErrLimitExceeded = errors.New("append log limit exceeded")

	// ErrClosed indicates the log has been released.
	ErrClosed = errors.New("append log closed")
)

// Log is a growable, append-only byte sequence.
type Log struct {
	data   []byte
	limit  int
	closed bool
}

// Option configures a Log.
type Option func(*Log)

// WithInitialCapacity preallocates room for n bytes.
func WithInitialCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.data = make([]byte, 0, n)
		}
	}
}

// WithLimit caps the log at n bytes. Zero means unlimited.
func WithLimit(n int) Option {
	return func(l *Log) {
		if n >= 0 {
			l.limit = n
		}
	}
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of bytes ever appended.
func (l *Log) Len() int {
	return len(l.data)
}

// Cap returns the current backing capacity.
func (l *Log) Cap() int {
	return cap(l.data)
}

// Limit returns the configured byte limit (0 for unlimited).
func (l *Log) Limit() int {
	return l.limit
}

// Closed reports whether Close has been called.
func (l *Log) Closed() bool {
	return l.closed
}

// Append copies p to the end of the log and returns the offset of its first
// byte.
func (l *Log) Append(p []byte) (int, error) {
	if l.closed {
		return 0, ErrClosed
	}

	offset := len(l.data)
	need := offset + len(p)
	if l.limit > 0 && need > l.limit {
		return 0, fmt.Errorf("%w: need %d bytes, limit %d", ErrLimitExceeded, need, l.limit)
	}

	l.grow(len(p))
	l.data = append(l.data, p...)
	return offset, nil
}

// AppendByte appends a single byte and returns its offset.
func (l *Log) AppendByte(c byte) (int, error) {
	if l.closed {
		return 0, ErrClosed
	}

	offset := len(l.data)
	if l.limit > 0 && offset+1 > l.limit {
		return 0, fmt.Errorf("%w: need %d bytes, limit %d", ErrLimitExceeded, offset+1, l.limit)
	}

	l.grow(1)
	l.data = append(l.data, c)
	return offset, nil
}

// grow makes room for n more bytes, doubling capacity so that appends are
// amortised O(1).
func (l *Log) grow(n int) {
	need := len(l.data) + n
	if need <= cap(l.data) {
		return
	}

	newCap := cap(l.data) * GrowthFactor
	if newCap < MinCapacity {
		newCap = MinCapacity
	}
	if newCap < need {
		newCap = need
	}
	if l.limit > 0 && newCap > l.limit {
		newCap = l.limit
	}

	data := make([]byte, len(l.data), newCap)
	copy(data, l.data)
	l.data = data
}

// ByteAt returns the byte stored at offset.
// The caller must pass an offset previously returned by Append.
func (l *Log) ByteAt(offset int) byte {
	return l.data[offset]
}

// Bytes returns a read-only view of n bytes starting at offset.
// The view's capacity is clipped so appending to it cannot write into the log.
func (l *Log) Bytes(offset, n int) []byte {
	return l.data[offset : offset+n : offset+n]
}

// Close releases the backing allocation. Offsets handed out earlier must not
// be used afterwards.
func (l *Log) Close() {
	l.data = nil
	l.closed = true
}
