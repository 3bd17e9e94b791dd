package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when a goto target lies outside [0, N).
var ErrInvalidIndex = errors.New("invalid index")

// ErrEmptyCollection is returned when a controller is created with no items.
var ErrEmptyCollection = errors.New("item collection must not be empty")

// IndexError carries the rejected index and the collection size.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %d not in [0, %d)", ErrInvalidIndex, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}
