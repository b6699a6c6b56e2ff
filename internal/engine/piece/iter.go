package piece

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Each calls fn with the bytes of every piece in document order until fn
// returns false. The slices are read-only views into the backing buffers.
func (t *Table) Each(fn func(span []byte) bool) {
	for _, p := range t.pieces {
		if !fn(t.span(p)) {
			return
		}
	}
}

// Spans returns read-only views of every piece in document order.
// The views stay valid and unchanged after later edits because neither
// backing buffer is ever overwritten.
func (t *Table) Spans() [][]byte {
	spans := make([][]byte, len(t.pieces))
	for i, p := range t.pieces {
		spans[i] = t.span(p)
	}
	return spans
}

// Bytes materialises the document into a new slice.
func (t *Table) Bytes() []byte {
	out := make([]byte, 0, t.length)
	t.Each(func(span []byte) bool {
		out = append(out, span...)
		return true
	})
	return out
}

// String returns the document as a string.
func (t *Table) String() string {
	var sb strings.Builder
	sb.Grow(t.length)
	t.Each(func(span []byte) bool {
		sb.Write(span)
		return true
	})
	return sb.String()
}

// Slice returns a copy of the bytes in [start, end).
func (t *Table) Slice(start, end int) ([]byte, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if start < 0 || start > end || end > t.length {
		return nil, fmt.Errorf("%w: range [%d, %d) (size %d)", ErrOutOfRange, start, end, t.length)
	}

	out := make([]byte, 0, end-start)
	pos := 0
	for _, p := range t.pieces {
		if pos >= end {
			break
		}
		pieceEnd := pos + p.Length
		if pieceEnd > start {
			span := t.span(p)
			lo := max(start-pos, 0)
			hi := min(end-pos, p.Length)
			out = append(out, span[lo:hi]...)
		}
		pos = pieceEnd
	}
	return out, nil
}

// WriteTo writes the document to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range t.pieces {
		n, err := w.Write(t.span(p))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reader returns a reader over the document as it is now. Later edits do not
// affect what the reader yields.
func (t *Table) Reader() io.Reader {
	spans := t.Spans()
	readers := make([]io.Reader, len(spans))
	for i, span := range spans {
		readers[i] = bytes.NewReader(span)
	}
	return io.MultiReader(readers...)
}
