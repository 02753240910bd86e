package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an edit names a line or column that
	// does not exist in the document.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrMalformedInput is returned when initial content is not valid UTF-8.
	ErrMalformedInput = errors.New("malformed input")
	// ErrPersist is returned when the document cannot be written out.
	ErrPersist = errors.New("cannot persist document")
)

// PosError records the operation and position of an out-of-bounds edit.
type PosError struct {
	Op   string
	Line int
	Col  int
}

func (e *PosError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %v", e.Op, e.Line, e.Col, ErrOutOfBounds)
}

func (e *PosError) Unwrap() error { return ErrOutOfBounds }

// PersistError records the destination and cause of a failed save.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() []error { return []error{ErrPersist, e.Err} }
