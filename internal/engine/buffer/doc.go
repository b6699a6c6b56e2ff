// Package buffer provides a thread-safe text buffer built on top of the
// piece table. It is the interface the rest of the editor uses to read and
// change a document.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Byte and multi-byte edits that either apply fully or not at all
//   - Coordinate conversion between byte offsets and line/column positions
//   - Cheap read-only snapshots for concurrent readers such as autosave
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello World!")
//	buf.Insert(6, "New ")   // "Hello New World!"
//	buf.Delete(0, 6)        // "New World!"
//
//	snap := buf.Snapshot()
//	go func() {
//	    _, _ = snap.WriteTo(f)
//	}()
//
// Offsets are byte offsets. Lines are separated by '\n' and the buffer does
// no line ending or Unicode processing.
package buffer
