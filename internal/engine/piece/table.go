package piece

import (
	"bytes"
	"fmt"

	"github.com/dshills/ptedit/internal/engine/appendlog"
)

// Table is a piece table over an original byte sequence and an owned
// append log. The concatenation of its pieces, in order, is the document.
type Table struct {
	original []byte
	log      *appendlog.Log
	pieces   []Piece
	length   int
	closed   bool

	// Configuration
	maxPieces    int
	copyOriginal bool
	logOpts      []appendlog.Option
}

// New creates a table whose document is original.
// An empty original yields a table with no pieces.
func New(original []byte, opts ...Option) *Table {
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}

	if t.copyOriginal {
		original = bytes.Clone(original)
	}
	// Clip capacity so the borrowed slice can never be appended through.
	t.original = original[:len(original):len(original)]
	t.log = appendlog.New(t.logOpts...)

	if len(original) > 0 {
		t.pieces = []Piece{{Source: Original, Start: 0, Length: len(original)}}
		t.length = len(original)
	}

	return t
}

// FromString creates a table that owns a copy of s.
func FromString(s string, opts ...Option) *Table {
	return New([]byte(s), opts...)
}

// Size returns the document length in bytes.
func (t *Table) Size() int {
	return t.length
}

// ByteAt returns the byte at index.
// Returns ErrOutOfRange if index is not in [0, Size()).
func (t *Table) ByteAt(index int) (byte, error) {
	if t.closed {
		return 0, ErrClosed
	}
	if index < 0 || index >= t.length {
		return 0, t.rangeError(index)
	}

	slot, offset := t.locate(index)
	return t.byteIn(t.pieces[slot], offset), nil
}

// Insert inserts c before index. Inserting at Size() appends to the document.
// Returns ErrOutOfRange if index is not in [0, Size()].
func (t *Table) Insert(index int, c byte) error {
	return t.InsertBytes(index, []byte{c})
}

// InsertBytes inserts p before index as a single run.
// On error the table is unchanged.
func (t *Table) InsertBytes(index int, p []byte) error {
	if t.closed {
		return ErrClosed
	}
	if index < 0 || index > t.length {
		return t.rangeError(index)
	}
	if len(p) == 0 {
		return nil
	}

	slot, offset := t.locate(index)
	addOffset := t.log.Len()

	// Typing right after the last inserted run: grow that piece in place.
	if offset == 0 && slot > 0 {
		prev := &t.pieces[slot-1]
		if prev.Source == Appended && prev.End() == addOffset {
			if _, err := t.log.Append(p); err != nil {
				return fmt.Errorf("insert at %d: %w", index, err)
			}
			prev.Length += len(p)
			t.length += len(p)
			return nil
		}
	}

	added := Piece{Source: Appended, Start: addOffset, Length: len(p)}
	replaced := 0
	repl := []Piece{added}
	if slot < len(t.pieces) {
		cur := t.pieces[slot]
		repl = []Piece{
			{Source: cur.Source, Start: cur.Start, Length: offset},
			added,
			{Source: cur.Source, Start: cur.Start + offset, Length: cur.Length - offset},
		}
		replaced = 1
	}

	repl, err := t.fit(replaced, repl)
	if err != nil {
		return fmt.Errorf("insert at %d: %w", index, err)
	}
	if _, err := t.log.Append(p); err != nil {
		return fmt.Errorf("insert at %d: %w", index, err)
	}

	t.splice(slot, replaced, repl...)
	t.length += len(p)
	return nil
}

// Delete removes the byte at index.
// Returns ErrOutOfRange if index is not in [0, Size()).
func (t *Table) Delete(index int) error {
	if t.closed {
		return ErrClosed
	}
	if index < 0 || index >= t.length {
		return t.rangeError(index)
	}

	slot, offset := t.locate(index)
	cur := &t.pieces[slot]

	switch {
	case cur.Length == 1:
		t.splice(slot, 1)
	case offset == 0:
		cur.Start++
		cur.Length--
	case offset == cur.Length-1:
		cur.Length--
	default:
		repl, err := t.fit(1, []Piece{
			{Source: cur.Source, Start: cur.Start, Length: offset},
			{Source: cur.Source, Start: cur.Start + offset + 1, Length: cur.Length - offset - 1},
		})
		if err != nil {
			return fmt.Errorf("delete at %d: %w", index, err)
		}
		t.splice(slot, 1, repl...)
	}

	t.length--
	return nil
}

// DeleteRange removes the bytes in [start, end).
// On error the table is unchanged.
func (t *Table) DeleteRange(start, end int) error {
	if t.closed {
		return ErrClosed
	}
	if start < 0 || start > end || end > t.length {
		return fmt.Errorf("%w: range [%d, %d) (size %d)", ErrOutOfRange, start, end, t.length)
	}
	if start == end {
		return nil
	}

	first, headLen := t.locate(start)
	last, lastOff := t.locate(end - 1)

	head := t.pieces[first]
	tail := t.pieces[last]
	repl, err := t.fit(last-first+1, []Piece{
		{Source: head.Source, Start: head.Start, Length: headLen},
		{Source: tail.Source, Start: tail.Start + lastOff + 1, Length: tail.Length - lastOff - 1},
	})
	if err != nil {
		return fmt.Errorf("delete range [%d, %d): %w", start, end, err)
	}

	t.splice(first, last-first+1, repl...)
	t.length -= end - start
	return nil
}

// Close releases the append log and the piece list. Every later operation
// returns ErrClosed.
func (t *Table) Close() {
	if t.closed {
		return
	}
	t.log.Close()
	t.pieces = nil
	t.original = nil
	t.length = 0
	t.closed = true
}

// Closed reports whether Close has been called.
func (t *Table) Closed() bool {
	return t.closed
}

// PieceCount returns the number of stored pieces.
func (t *Table) PieceCount() int {
	return len(t.pieces)
}

// Pieces returns a copy of the piece list.
func (t *Table) Pieces() []Piece {
	out := make([]Piece, len(t.pieces))
	copy(out, t.pieces)
	return out
}

// LogLen returns the length of the append log.
func (t *Table) LogLen() int {
	return t.log.Len()
}

// OriginalLen returns the length of the original buffer.
func (t *Table) OriginalLen() int {
	return len(t.original)
}

// byteIn returns the byte at offset within p.
func (t *Table) byteIn(p Piece, offset int) byte {
	if p.Source == Original {
		return t.original[p.Start+offset]
	}
	return t.log.ByteAt(p.Start + offset)
}

// span returns the bytes a piece refers to.
func (t *Table) span(p Piece) []byte {
	if p.Source == Original {
		return t.original[p.Start:p.End():p.End()]
	}
	return t.log.Bytes(p.Start, p.Length)
}

func (t *Table) rangeError(index int) error {
	return fmt.Errorf("%w: index %d (size %d)", ErrOutOfRange, index, t.length)
}
