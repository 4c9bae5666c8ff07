package smartarray

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is the sentinel behind every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an indexed access outside [0, Len).
type IndexError struct {
	Name  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0:%d]", e.Name, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
