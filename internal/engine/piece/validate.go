package piece

import "fmt"

// Validate checks the table invariants: no empty pieces, every piece inside
// its backing buffer, and the cached size equal to the sum of piece lengths.
func (t *Table) Validate() error {
	if t.closed {
		return ErrClosed
	}

	sum := 0
	for i, p := range t.pieces {
		if p.Length <= 0 {
			return fmt.Errorf("%w: piece %d %v has length %d", ErrCorrupt, i, p, p.Length)
		}
		limit := len(t.original)
		if p.Source == Appended {
			limit = t.log.Len()
		}
		if p.Start < 0 || p.End() > limit {
			return fmt.Errorf("%w: piece %d %v outside buffer of length %d", ErrCorrupt, i, p, limit)
		}
		sum += p.Length
	}

	if sum != t.length {
		return fmt.Errorf("%w: pieces sum to %d, size is %d", ErrCorrupt, sum, t.length)
	}
	if t.maxPieces > 0 && len(t.pieces) > t.maxPieces {
		return fmt.Errorf("%w: %d pieces exceeds limit %d", ErrCorrupt, len(t.pieces), t.maxPieces)
	}
	return nil
}
