package piece

import "fmt"

// Source identifies the buffer a piece refers to.
type Source uint8

const (
	Original Source = iota // the document as loaded
	Appended               // the append log
)

// String returns the name of the source.
func (s Source) String() string {
	switch s {
	case Original:
		return "original"
	case Appended:
		return "appended"
	default:
		return "unknown"
	}
}

// Piece is a contiguous run of Length bytes beginning at Start in the buffer
// named by Source. Stored pieces always have Length > 0.
type Piece struct {
	Source Source
	Start  int
	Length int
}

// End returns the offset one past the last byte of the piece.
func (p Piece) End() int {
	return p.Start + p.Length
}

// String returns a compact representation for debugging.
func (p Piece) String() string {
	return fmt.Sprintf("%s[%d:%d]", p.Source, p.Start, p.End())
}
