// Package appendlog provides the append-only byte log that backs every
// insertion made to a piece table.
//
// A Log only grows. Append returns the offset at which the new bytes begin,
// which is always the length of the log before the call, and that offset
// keeps referring to the same bytes for the lifetime of the log. Pieces can
// therefore store raw offsets into the log without ever being invalidated.
//
// Basic usage:
//
//	l := appendlog.New()
//	off, err := l.Append([]byte("hi")) // off == 0
//	off, err = l.AppendByte('!')       // off == 2
//	view := l.Bytes(0, 3)              // "hi!"
//
// A Log is not safe for concurrent use.
package appendlog
