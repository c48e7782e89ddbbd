package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Writer is write-only clipboard access.
type Writer interface {
	WriteAll(text string) error
}

// ErrUnsupported is returned when the host has no clipboard utility.
var ErrUnsupported = errors.New("clipboard not available on this system")

// System writes to the desktop clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
