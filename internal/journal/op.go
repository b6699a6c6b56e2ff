package journal

import (
	"errors"
	"fmt"
)

// ErrInvalidOp is returned for operations that can never apply.
var ErrInvalidOp = errors.New("invalid operation")

// Insert adds Text before byte At.
type Insert struct {
	At   int    `yaml:"at"`
	Text string `yaml:"text"`
}

// Delete removes Count bytes starting at byte At. A zero Count removes one
// byte.
type Delete struct {
	At    int `yaml:"at"`
	Count int `yaml:"count,omitempty"`
}

// Len returns the number of bytes the delete removes.
func (d Delete) Len() int {
	if d.Count == 0 {
		return 1
	}
	return d.Count
}

// Op is a single journal entry. Exactly one field is set.
type Op struct {
	Insert *Insert `yaml:"insert,omitempty"`
	Delete *Delete `yaml:"delete,omitempty"`
}

// Validate checks the operation's shape. It does not check offsets against
// any document.
func (o Op) Validate() error {
	switch {
	case o.Insert != nil && o.Delete != nil:
		return fmt.Errorf("%w: both insert and delete set", ErrInvalidOp)
	case o.Insert != nil:
		if o.Insert.At < 0 {
			return fmt.Errorf("%w: negative insert offset %d", ErrInvalidOp, o.Insert.At)
		}
		if o.Insert.Text == "" {
			return fmt.Errorf("%w: empty insert text", ErrInvalidOp)
		}
	case o.Delete != nil:
		if o.Delete.At < 0 {
			return fmt.Errorf("%w: negative delete offset %d", ErrInvalidOp, o.Delete.At)
		}
		if o.Delete.Count < 0 {
			return fmt.Errorf("%w: negative delete count %d", ErrInvalidOp, o.Delete.Count)
		}
	default:
		return fmt.Errorf("%w: empty entry", ErrInvalidOp)
	}
	return nil
}

// String returns a compact description of the operation.
func (o Op) String() string {
	switch {
	case o.Insert != nil && o.Delete == nil:
		return fmt.Sprintf("insert %q at %d", o.Insert.Text, o.Insert.At)
	case o.Delete != nil && o.Insert == nil:
		return fmt.Sprintf("delete %d at %d", o.Delete.Len(), o.Delete.At)
	default:
		return "invalid"
	}
}

// OpError reports the journal entry that failed.
type OpError struct {
	Index int
	Op    Op
	Err   error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}
