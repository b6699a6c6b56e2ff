package buffer

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/ptedit/internal/engine/piece"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = piece.ErrOutOfRange
	ErrRangeInvalid     = errors.New("invalid range")
	ErrClosed           = piece.ErrClosed
)

// Buffer wraps a piece table with locking, multi-byte edits, line
// addressing and revisions. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	table      *piece.Table
	revisionID RevisionID
	tableOpts  []piece.Option
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromBytes(nil, opts...)
}

// NewBufferFromBytes creates a buffer whose original content is data.
// The buffer borrows data; the caller must not modify it afterwards.
func NewBufferFromBytes(data []byte, opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.table = piece.New(data, b.tableOpts...)
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	return NewBufferFromBytes([]byte(s), opts...)
}

// NewBufferFromReader creates a buffer from everything r yields.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromBytes(data, opts...), nil
}

// Read Operations

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Size()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.ByteAt(offset)
}

// Text returns the full buffer content as a string.
// For large buffers, prefer WriteTo or a Snapshot.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.String()
}

// Bytes returns a copy of the full buffer content.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Bytes()
}

// TextRange returns text in the given byte range.
// Returns an empty string if the range is invalid.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, err := b.table.Slice(start, end)
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteTo writes the full buffer content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.WriteTo(w)
}

// Write Operations

// InsertByte inserts a single byte before offset.
func (b *Buffer) InsertByte(offset ByteOffset, c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.table.Insert(offset, c); err != nil {
		return err
	}
	b.revisionID = NewRevisionID()
	return nil
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.table.InsertBytes(offset, []byte(text)); err != nil {
		return 0, err
	}
	if text != "" {
		b.revisionID = NewRevisionID()
	}
	return offset + len(text), nil
}

// DeleteByte removes the byte at offset.
func (b *Buffer) DeleteByte(offset ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.table.Delete(offset); err != nil {
		return err
	}
	b.revisionID = NewRevisionID()
	return nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.table.Size() {
		return fmt.Errorf("%w: [%d:%d) in buffer of length %d", ErrRangeInvalid, start, end, b.table.Size())
	}
	if err := b.table.DeleteRange(start, end); err != nil {
		return err
	}
	if start != end {
		b.revisionID = NewRevisionID()
	}
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer. Either the whole edit is
// applied or the buffer is left unchanged.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := edit.Range
	if !r.IsValid() || r.End > b.table.Size() {
		return EditResult{}, fmt.Errorf("%w: %s in buffer of length %d", ErrRangeInvalid, r, b.table.Size())
	}

	old, err := b.table.Slice(r.Start, r.End)
	if err != nil {
		return EditResult{}, err
	}

	// Insert after the range first: a failed insert changes nothing, and the
	// inserted run can always be removed again without creating pieces.
	if err := b.table.InsertBytes(r.End, []byte(edit.NewText)); err != nil {
		return EditResult{}, err
	}
	if err := b.table.DeleteRange(r.Start, r.End); err != nil {
		if rbErr := b.table.DeleteRange(r.End, r.End+len(edit.NewText)); rbErr != nil {
			return EditResult{}, errors.Join(err, rbErr)
		}
		return EditResult{}, err
	}

	if !r.IsEmpty() || edit.NewText != "" {
		b.revisionID = NewRevisionID()
	}

	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: r.Start + len(edit.NewText)},
		OldText:  string(old),
		Delta:    len(edit.NewText) - r.Len(),
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// PieceCount returns the number of pieces in the underlying table.
func (b *Buffer) PieceCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.PieceCount()
}

// Stats describes the internal shape of the buffer.
type Stats struct {
	Size        int // document length
	Pieces      int // stored pieces
	OriginalLen int // bytes in the original buffer
	AppendedLen int // bytes ever inserted
}

// Stats returns the buffer's current piece table statistics.
func (b *Buffer) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Stats{
		Size:        b.table.Size(),
		Pieces:      b.table.PieceCount(),
		OriginalLen: b.table.OriginalLen(),
		AppendedLen: b.table.LogLen(),
	}
}

// Validate checks the underlying table invariants.
func (b *Buffer) Validate() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table.Validate()
}

// Close releases the buffer's storage. Later operations fail with ErrClosed.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.table.Close()
}

// Snapshot returns a read-only view of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		spans:      b.table.Spans(), // backing buffers are never overwritten
		length:     b.table.Size(),
		revisionID: b.revisionID,
	}
}
