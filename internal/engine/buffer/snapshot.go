package buffer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	spans      [][]byte
	length     int
	revisionID RevisionID
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.length
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return s.length == 0
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, error) {
	if offset < 0 || offset >= s.length {
		return 0, fmt.Errorf("%w: index %d (size %d)", ErrOffsetOutOfRange, offset, s.length)
	}
	for _, span := range s.spans {
		if offset < len(span) {
			return span[offset], nil
		}
		offset -= len(span)
	}
	return 0, ErrOffsetOutOfRange
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	var sb strings.Builder
	sb.Grow(s.length)
	for _, span := range s.spans {
		sb.Write(span)
	}
	return sb.String()
}

// Bytes returns a copy of the full snapshot content.
func (s *Snapshot) Bytes() []byte {
	out := make([]byte, 0, s.length)
	for _, span := range s.spans {
		out = append(out, span...)
	}
	return out
}

// WriteTo writes the snapshot content to w.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, span := range s.spans {
		n, err := w.Write(span)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reader returns a reader over the snapshot content.
func (s *Snapshot) Reader() io.Reader {
	readers := make([]io.Reader, len(s.spans))
	for i, span := range s.spans {
		readers[i] = bytes.NewReader(span)
	}
	return io.MultiReader(readers...)
}
