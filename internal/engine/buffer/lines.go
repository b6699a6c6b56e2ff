package buffer

import (
	"bytes"

	"github.com/dshills/ptedit/internal/engine/piece"
)

// lineStarts returns the offset of the first byte of every line.
// The table has no line index, so this is a single pass over the pieces.
func lineStarts(t *piece.Table) []int {
	starts := []int{0}
	pos := 0
	t.Each(func(span []byte) bool {
		base := pos
		for {
			i := bytes.IndexByte(span[pos-base:], '\n')
			if i < 0 {
				break
			}
			pos += i + 1
			starts = append(starts, pos)
		}
		pos = base + len(span)
		return true
	})
	return starts
}

// LineCount returns the number of lines (newlines + 1).
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(lineStarts(b.table))
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end map to the buffer length.
func (b *Buffer) LineStartOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	starts := lineStarts(b.table)
	if line < 0 {
		return 0
	}
	if line >= len(starts) {
		return b.table.Size()
	}
	return starts[line]
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	starts := lineStarts(b.table)
	if line < 0 || line >= len(starts) {
		return ""
	}
	start, end := lineBounds(starts, line, b.table.Size())
	data, err := b.table.Slice(start, end)
	if err != nil {
		return ""
	}
	return string(data)
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets past the end are clamped to the end of the buffer.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = min(max(offset, 0), b.table.Size())
	starts := lineStarts(b.table)

	line := 0
	for line+1 < len(starts) && starts[line+1] <= offset {
		line++
	}
	return Point{Line: line, Column: offset - starts[line]}
}

// PointToOffset converts line/column to byte offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	starts := lineStarts(b.table)
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(starts) {
		return b.table.Size()
	}
	start, end := lineBounds(starts, p.Line, b.table.Size())
	return min(start+max(p.Column, 0), end)
}

// lineBounds returns [start, end) of a line, excluding its newline.
func lineBounds(starts []int, line, size int) (int, int) {
	start := starts[line]
	end := size
	if line+1 < len(starts) {
		end = starts[line+1] - 1
	}
	return start, end
}
