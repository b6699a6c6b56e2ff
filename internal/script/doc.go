// Package script runs Lua scripts against a buffer.
//
// Scripts see a global doc table exposing the editing core:
//
//	doc.size()          -- document length in bytes
//	doc.get(i)          -- byte at i as a one-character string
//	doc.insert(i, s)    -- insert s before byte i
//	doc.delete(i [, n]) -- remove n bytes (default 1) starting at i
//	doc.text()          -- whole document as a string
//
// Indices are zero-based. A global log(msg) writes to the runner's logger.
// Only the base, table, string and math libraries are available.
package script
