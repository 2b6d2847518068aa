package docio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is wrapped with the offending extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrFileTooLarge is wrapped in a DecodeFailure when a file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

// DecodeFailure reports a file that could not be read or parsed.
type DecodeFailure struct {
	Path string
	Err  error
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeFailure) Unwrap() error { return e.Err }

// EncodeFailure reports a document that could not be serialized or written.
type EncodeFailure struct {
	Path string
	Err  error
}

func (e *EncodeFailure) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeFailure) Unwrap() error { return e.Err }

func unsupported(ext string) error {
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}
