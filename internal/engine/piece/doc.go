// Package piece implements a byte-oriented piece table.
//
// A Table represents a document as an ordered list of pieces. Each piece is a
// span into one of two backing buffers: the original document, which is never
// written, and an append-only log that receives every inserted byte. Edits
// only rearrange pieces; no document byte is copied or moved once it exists
// in a backing buffer.
//
// Basic usage:
//
//	t := piece.New([]byte("Hello World!"))
//	_ = t.Insert(6, 'N')          // "Hello NWorld!"
//	_ = t.Delete(0)               // "ello NWorld!"
//	c, _ := t.ByteAt(0)           // 'e'
//	text := t.String()
//
// Sequential typing at the end of an inserted run extends the last appended
// piece instead of creating a new one, so the piece count stays flat while
// a user types.
//
// Positions are byte indices. The table performs no Unicode processing.
//
// A Table is not safe for concurrent use; see the buffer package for a
// synchronised wrapper.
package piece
