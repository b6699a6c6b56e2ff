package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/ptedit/internal/logging"
)

// Journal is an ordered list of edits.
type Journal struct {
	Ops []Op `yaml:"ops"`
}

// Editor is the document surface a journal is replayed against.
type Editor interface {
	Insert(offset int, text string) (int, error)
	Delete(start, end int) error
}

// Result summarizes a replay.
type Result struct {
	Applied  int // operations applied
	Inserted int // bytes inserted
	Deleted  int // bytes deleted
}

// Parse decodes a journal from r and validates every entry. Unknown keys are
// rejected. An empty document yields an empty journal.
func Parse(r io.Reader) (*Journal, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	j := &Journal{}
	if err := dec.Decode(j); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse journal: %w", err)
	}
	for i, op := range j.Ops {
		if err := op.Validate(); err != nil {
			return nil, &OpError{Index: i, Op: op, Err: err}
		}
	}
	return j, nil
}

// Load reads and parses the journal at path.
func Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	j, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// Len returns the number of operations.
func (j *Journal) Len() int {
	return len(j.Ops)
}

// Apply replays the journal against ed in order. It stops at the first
// failing operation and returns an *OpError; operations before it stay
// applied. Cancellation is checked between operations.
func (j *Journal) Apply(ctx context.Context, ed Editor) (Result, error) {
	logger := logging.FromContext(ctx)
	var res Result

	for i, op := range j.Ops {
		if err := ctx.Err(); err != nil {
			return res, &OpError{Index: i, Op: op, Err: err}
		}
		if err := op.Validate(); err != nil {
			return res, &OpError{Index: i, Op: op, Err: err}
		}

		switch {
		case op.Insert != nil:
			if _, err := ed.Insert(op.Insert.At, op.Insert.Text); err != nil {
				return res, &OpError{Index: i, Op: op, Err: err}
			}
			res.Inserted += len(op.Insert.Text)
		case op.Delete != nil:
			n := op.Delete.Len()
			if err := ed.Delete(op.Delete.At, op.Delete.At+n); err != nil {
				return res, &OpError{Index: i, Op: op, Err: err}
			}
			res.Deleted += n
		}
		res.Applied++
	}

	logger.Debug("journal applied", logging.FieldOps, res.Applied)
	return res, nil
}

// RecordInsert appends an insert entry.
func (j *Journal) RecordInsert(at int, text string) {
	j.Ops = append(j.Ops, Op{Insert: &Insert{At: at, Text: text}})
}

// RecordDelete appends a delete entry.
func (j *Journal) RecordDelete(at, count int) {
	j.Ops = append(j.Ops, Op{Delete: &Delete{At: at, Count: count}})
}

// Encode writes the journal as YAML.
func (j *Journal) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(j); err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	return enc.Close()
}

// Recorder wraps an Editor and records every successful edit.
type Recorder struct {
	ed      Editor
	journal Journal
}

// NewRecorder returns a recorder forwarding edits to ed.
func NewRecorder(ed Editor) *Recorder {
	return &Recorder{ed: ed}
}

// Insert forwards to the wrapped editor and records on success.
func (r *Recorder) Insert(offset int, text string) (int, error) {
	end, err := r.ed.Insert(offset, text)
	if err == nil && text != "" {
		r.journal.RecordInsert(offset, text)
	}
	return end, err
}

// Delete forwards to the wrapped editor and records on success.
func (r *Recorder) Delete(start, end int) error {
	err := r.ed.Delete(start, end)
	if err == nil && end > start {
		r.journal.RecordDelete(start, end-start)
	}
	return err
}

// Journal returns the edits recorded so far.
func (r *Recorder) Journal() *Journal {
	ops := make([]Op, len(r.journal.Ops))
	copy(ops, r.journal.Ops)
	return &Journal{Ops: ops}
}
