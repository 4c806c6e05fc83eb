package gallery

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGallery is returned for any intent applied to a gallery without items.
	ErrEmptyGallery = errors.New("gallery is empty")
	// ErrOutOfRange is matched by every *IndexError.
	ErrOutOfRange = errors.New("index out of range")
	// ErrNotOpen is returned for navigation intents while the lightbox is closed.
	ErrNotOpen = errors.New("gallery is not open")
)

// IndexError reports a JumpTo or Open intent outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfRange
}
