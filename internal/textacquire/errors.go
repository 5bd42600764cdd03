package textacquire

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat means the file extension maps to no decoder.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrParserUnavailable means the external decode capability is not
	// installed. Recoverable: callers should prompt for a manual text paste.
	ErrParserUnavailable = errors.New("document parser unavailable")

	// ErrTooShort means the decoded text is too small to be a real document.
	ErrTooShort = errors.New("document text too short")
)

// DecodeError wraps a failure from an external decoder that was present
// but could not process the document.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s document: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
