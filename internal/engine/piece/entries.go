package piece

import (
	"fmt"
	"slices"
)

// locate maps a document index to a slot in the piece list and an offset
// within that piece. An index equal to Size() maps to (len(pieces), 0), which
// is the insertion point at the end of the document.
func (t *Table) locate(index int) (slot, offset int) {
	pos := 0
	for i, p := range t.pieces {
		if index < pos+p.Length {
			return i, index - pos
		}
		pos += p.Length
	}
	return len(t.pieces), 0
}

// fit drops empty pieces from repl and checks that replacing n stored pieces
// with the rest stays within the piece ceiling. It does not modify the table.
func (t *Table) fit(n int, repl []Piece) ([]Piece, error) {
	kept := repl[:0]
	for _, p := range repl {
		if p.Length > 0 {
			kept = append(kept, p)
		}
	}

	if t.maxPieces > 0 {
		if total := len(t.pieces) - n + len(kept); total > t.maxPieces {
			return nil, fmt.Errorf("%w: %d pieces, limit %d", ErrTooManyPieces, total, t.maxPieces)
		}
	}
	return kept, nil
}

// splice replaces the n pieces starting at slot with repl, preserving the
// order of everything else. repl must already have passed fit.
func (t *Table) splice(slot, n int, repl ...Piece) {
	t.pieces = slices.Replace(t.pieces, slot, slot+n, repl...)
}
