package emails

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched (via errors.Is) by every IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an edit or delete at an index outside the list.
// It is a precondition violation: callers are expected to check bounds first.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

func checkIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}
