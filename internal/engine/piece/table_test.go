package piece

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ptedit/internal/engine/appendlog"
)

// readAll reads the document byte by byte through ByteAt, the way the
// renderer and file save consume it.
func readAll(t *testing.T, pt *Table) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < pt.Size(); i++ {
		c, err := pt.ByteAt(i)
		require.NoError(t, err)
		sb.WriteByte(c)
	}
	return sb.String()
}

func TestNewSizeMatchesOriginal(t *testing.T) {
	pt := FromString("Hello World!")

	assert.Equal(t, 12, pt.Size())
	assert.Equal(t, 1, pt.PieceCount())
	require.NoError(t, pt.Validate())
}

func TestNewEmptyHasNoPieces(t *testing.T) {
	pt := New(nil)

	assert.Equal(t, 0, pt.Size())
	assert.Equal(t, 0, pt.PieceCount())
	require.NoError(t, pt.Validate())
}

func TestByteAt(t *testing.T) {
	pt := FromString("Hello World!")

	c, err := pt.ByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte('H'), c)

	c, err = pt.ByteAt(4)
	require.NoError(t, err)
	assert.Equal(t, byte('o'), c)

	_, err = pt.ByteAt(50)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = pt.ByteAt(12)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = pt.ByteAt(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestByteAtIsRepeatable(t *testing.T) {
	pt := FromString("abc")
	require.NoError(t, pt.Insert(1, 'x'))

	for i := 0; i < pt.Size(); i++ {
		first, err := pt.ByteAt(i)
		require.NoError(t, err)
		second, err := pt.ByteAt(i)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestInsertSequentialWord(t *testing.T) {
	pt := FromString("Hello World!")

	require.NoError(t, pt.Insert(6, 'N'))
	require.NoError(t, pt.Insert(7, 'e'))
	require.NoError(t, pt.Insert(8, 'w'))
	require.NoError(t, pt.Insert(9, ' '))

	assert.Equal(t, 16, pt.Size())
	assert.Equal(t, "Hello New World!", readAll(t, pt))
	assert.Equal(t, 3, pt.PieceCount(), "typed word should coalesce into one piece")
	require.NoError(t, pt.Validate())
}

func TestDeleteScenarios(t *testing.T) {
	pt := FromString("Hello New World")
	require.Equal(t, 15, pt.Size())

	require.NoError(t, pt.Delete(14))
	last, err := pt.ByteAt(pt.Size() - 1)
	require.NoError(t, err)
	assert.Equal(t, byte('l'), last)
	_, err = pt.ByteAt(14)
	assert.ErrorIs(t, err, ErrOutOfRange)

	require.NoError(t, pt.Delete(0))
	c, err := pt.ByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte('e'), c)

	require.NoError(t, pt.Delete(4))
	c, err = pt.ByteAt(4)
	require.NoError(t, err)
	assert.Equal(t, byte('N'), c)

	assert.Equal(t, "elloNew Worl", pt.String())
	require.NoError(t, pt.Validate())
}

func TestInsertAtStart(t *testing.T) {
	pt := FromString("World")

	require.NoError(t, pt.InsertBytes(0, []byte("Hello ")))

	assert.Equal(t, "Hello World", pt.String())
	assert.Equal(t, 2, pt.PieceCount())
}

func TestInsertAtEnd(t *testing.T) {
	pt := FromString("Hello")

	require.NoError(t, pt.Insert(5, '!'))

	assert.Equal(t, "Hello!", pt.String())
	assert.Equal(t, 2, pt.PieceCount())
}

func TestInsertOutOfRange(t *testing.T) {
	pt := FromString("Hello")

	err := pt.Insert(6, 'x')
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = pt.Insert(-1, 'x')
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, "Hello", pt.String())
	assert.Equal(t, 0, pt.LogLen(), "rejected insert must not touch the log")
}

func TestInsertIntoEmpty(t *testing.T) {
	pt := New(nil)

	require.NoError(t, pt.Insert(0, 'a'))
	require.NoError(t, pt.Insert(1, 'b'))
	require.NoError(t, pt.Insert(0, 'c'))

	assert.Equal(t, "cab", pt.String())
	require.NoError(t, pt.Validate())
}

func TestInsertEmptyBytesIsNoop(t *testing.T) {
	pt := FromString("abc")

	require.NoError(t, pt.InsertBytes(1, nil))

	assert.Equal(t, "abc", pt.String())
	assert.Equal(t, 1, pt.PieceCount())
}

func TestInsertSplitsPiece(t *testing.T) {
	pt := FromString("abcd")

	require.NoError(t, pt.Insert(2, 'X'))

	assert.Equal(t, []Piece{
		{Source: Original, Start: 0, Length: 2},
		{Source: Appended, Start: 0, Length: 1},
		{Source: Original, Start: 2, Length: 2},
	}, pt.Pieces())
}

func TestAppendTypingCoalesces(t *testing.T) {
	pt := FromString("Hello")

	for _, c := range []byte(", World and everyone in it") {
		require.NoError(t, pt.Insert(pt.Size(), c))
	}

	assert.Equal(t, "Hello, World and everyone in it", pt.String())
	assert.Equal(t, 2, pt.PieceCount())
}

func TestCoalesceRequiresContiguousLog(t *testing.T) {
	pt := FromString("abcdef")

	require.NoError(t, pt.Insert(1, 'X')) // log: X
	require.NoError(t, pt.Insert(5, 'Y')) // log: XY, elsewhere
	require.NoError(t, pt.Insert(2, 'Z')) // after X, but log tail is Y

	assert.Equal(t, "aXZbcdYef", pt.String())
	assert.Equal(t, 6, pt.PieceCount())
	require.NoError(t, pt.Validate())
}

func TestDeleteFirstByteOfPiece(t *testing.T) {
	pt := FromString("abc")

	require.NoError(t, pt.Delete(0))

	assert.Equal(t, []Piece{{Source: Original, Start: 1, Length: 2}}, pt.Pieces())
}

func TestDeleteLastByteOfPiece(t *testing.T) {
	pt := FromString("abc")

	require.NoError(t, pt.Delete(2))

	assert.Equal(t, []Piece{{Source: Original, Start: 0, Length: 2}}, pt.Pieces())
}

func TestDeleteInteriorSplits(t *testing.T) {
	pt := FromString("abc")

	require.NoError(t, pt.Delete(1))

	assert.Equal(t, "ac", pt.String())
	assert.Equal(t, []Piece{
		{Source: Original, Start: 0, Length: 1},
		{Source: Original, Start: 2, Length: 1},
	}, pt.Pieces())
}

func TestDeleteDropsEmptyPiece(t *testing.T) {
	pt := FromString("ab")
	require.NoError(t, pt.Insert(1, 'X'))
	require.Equal(t, 3, pt.PieceCount())

	require.NoError(t, pt.Delete(1))

	assert.Equal(t, "ab", pt.String())
	assert.Equal(t, 2, pt.PieceCount())
	require.NoError(t, pt.Validate())
}

func TestDeleteEverything(t *testing.T) {
	pt := FromString("abc")

	for pt.Size() > 0 {
		require.NoError(t, pt.Delete(0))
	}

	assert.Equal(t, 0, pt.PieceCount())
	assert.Equal(t, "", pt.String())

	require.NoError(t, pt.Insert(0, 'z'))
	assert.Equal(t, "z", pt.String())
}

func TestDeleteOutOfRange(t *testing.T) {
	pt := FromString("abc")

	assert.ErrorIs(t, pt.Delete(3), ErrOutOfRange)
	assert.ErrorIs(t, pt.Delete(-1), ErrOutOfRange)
	assert.ErrorIs(t, New(nil).Delete(0), ErrOutOfRange)

	assert.Equal(t, "abc", pt.String())
}

func TestDeleteNeverTouchesBackingBuffers(t *testing.T) {
	orig := []byte("Hello World")
	pt := New(orig)
	require.NoError(t, pt.InsertBytes(5, []byte(",")))
	logLen := pt.LogLen()

	require.NoError(t, pt.Delete(3))
	require.NoError(t, pt.Delete(4))

	assert.Equal(t, "Hello World", string(orig))
	assert.Equal(t, logLen, pt.LogLen())
}

func TestDeleteRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"empty range", 3, 3, "abXYcdef"},
		{"within original head", 0, 1, "bXYcdef"},
		{"within appended", 2, 3, "abYcdef"},
		{"across pieces", 1, 5, "adef"},
		{"everything", 0, 8, ""},
		{"tail", 6, 8, "abXYcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := FromString("abcdef")
			require.NoError(t, pt.InsertBytes(2, []byte("XY")))

			require.NoError(t, pt.DeleteRange(tt.start, tt.end))

			assert.Equal(t, tt.want, pt.String())
			require.NoError(t, pt.Validate())
		})
	}
}

func TestDeleteRangeInvalid(t *testing.T) {
	pt := FromString("abc")

	assert.ErrorIs(t, pt.DeleteRange(-1, 1), ErrOutOfRange)
	assert.ErrorIs(t, pt.DeleteRange(2, 1), ErrOutOfRange)
	assert.ErrorIs(t, pt.DeleteRange(0, 4), ErrOutOfRange)
	assert.Equal(t, "abc", pt.String())
}

func TestMaxPieces(t *testing.T) {
	pt := FromString("abcdef", WithMaxPieces(3))

	require.NoError(t, pt.Insert(2, 'X'))
	require.Equal(t, 3, pt.PieceCount())

	// Coalescing does not need a new piece.
	require.NoError(t, pt.Insert(3, 'Y'))

	logLen := pt.LogLen()
	err := pt.Insert(5, 'Z')
	assert.ErrorIs(t, err, ErrTooManyPieces)
	assert.Equal(t, "abXYcdef", pt.String())
	assert.Equal(t, logLen, pt.LogLen(), "rejected insert must not append to the log")

	err = pt.Delete(5)
	assert.ErrorIs(t, err, ErrTooManyPieces)
	assert.Equal(t, "abXYcdef", pt.String())

	// Trimming a piece end still works at the ceiling.
	require.NoError(t, pt.Delete(7))
	assert.Equal(t, "abXYcde", pt.String())
	require.NoError(t, pt.Validate())
}

func TestLogLimitLeavesTableUnchanged(t *testing.T) {
	pt := FromString("abc", WithLogLimit(2))

	require.NoError(t, pt.Insert(3, 'd'))
	require.NoError(t, pt.Insert(4, 'e'))

	err := pt.Insert(0, 'x')
	assert.True(t, errors.Is(err, appendlog.ErrLimitExceeded))
	assert.Equal(t, "abcde", pt.String())

	err = pt.Insert(5, 'f')
	assert.ErrorIs(t, err, appendlog.ErrLimitExceeded)
	assert.Equal(t, "abcde", pt.String())
	require.NoError(t, pt.Validate())
}

func TestWithCopyOwnsOriginal(t *testing.T) {
	orig := []byte("abc")
	pt := New(orig, WithCopy())

	orig[0] = 'z'

	assert.Equal(t, "abc", pt.String())
}

func TestBorrowedOriginalIsNotWritten(t *testing.T) {
	backing := []byte("abcdef")
	orig := backing[:3]
	pt := New(orig)

	require.NoError(t, pt.InsertBytes(3, []byte("XYZ")))

	assert.Equal(t, "abcdef", string(backing))
	assert.Equal(t, "abcXYZ", pt.String())
}

func TestSlice(t *testing.T) {
	pt := FromString("Hello World")
	require.NoError(t, pt.InsertBytes(5, []byte(",")))

	got, err := pt.Slice(3, 9)
	require.NoError(t, err)
	assert.Equal(t, "lo, Wo", string(got))

	got, err = pt.Slice(4, 4)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = pt.Slice(5, 100)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWriteTo(t *testing.T) {
	pt := FromString("Hello World")
	require.NoError(t, pt.InsertBytes(5, []byte(",")))

	var buf bytes.Buffer
	n, err := pt.WriteTo(&buf)
	require.NoError(t, err)

	assert.Equal(t, int64(12), n)
	assert.Equal(t, "Hello, World", buf.String())
}

func TestReaderIsStableAcrossEdits(t *testing.T) {
	pt := FromString("abc")
	require.NoError(t, pt.Insert(3, 'd'))

	r := pt.Reader()

	require.NoError(t, pt.Delete(0))
	for i := 0; i < 1000; i++ {
		require.NoError(t, pt.Insert(pt.Size(), 'x'))
	}

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(got))
}

func TestEachStopsEarly(t *testing.T) {
	pt := FromString("abc")
	require.NoError(t, pt.Insert(1, 'X'))

	var seen []string
	pt.Each(func(span []byte) bool {
		seen = append(seen, string(span))
		return len(seen) < 2
	})

	assert.Equal(t, []string{"a", "X"}, seen)
}

func TestClose(t *testing.T) {
	pt := FromString("abc")
	pt.Close()
	pt.Close()

	assert.True(t, pt.Closed())
	assert.Equal(t, 0, pt.Size())

	_, err := pt.ByteAt(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, pt.Insert(0, 'x'), ErrClosed)
	assert.ErrorIs(t, pt.Delete(0), ErrClosed)
	assert.ErrorIs(t, pt.Validate(), ErrClosed)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "original", Original.String())
	assert.Equal(t, "appended", Appended.String())
	assert.Equal(t, "unknown", Source(9).String())
	assert.Equal(t, "appended[2:5]", Piece{Source: Appended, Start: 2, Length: 3}.String())
}
