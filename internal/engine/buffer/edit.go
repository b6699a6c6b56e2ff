package buffer

import "fmt"

// Edit represents a single replacement of a byte range with new text.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an edit that inserts text at offset.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an edit that removes [start, end).
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("insert %q at %d", e.NewText, e.Range.Start)
	case e.NewText == "":
		return fmt.Sprintf("delete %s", e.Range)
	default:
		return fmt.Sprintf("replace %s with %q", e.Range, e.NewText)
	}
}

// EditResult describes the effect of an applied edit.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int
}
