// Package journal reads, replays and writes edit journals.
//
// A journal is a YAML document listing byte-level edits in the order they
// are applied:
//
//	ops:
//	  - insert: {at: 6, text: "New "}
//	  - delete: {at: 0, count: 1}
//
// Offsets are zero-based byte indices into the document as it stands when
// the operation runs.
package journal
