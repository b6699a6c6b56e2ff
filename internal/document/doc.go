// Package document binds a buffer to a file on disk.
//
// A Document loads a file fully into memory, hands the bytes to a piece
// table as its original buffer, and writes the current content back with an
// atomic temp-file-and-rename save. It also reports changes made to the file
// by other programs while the document is open.
package document
