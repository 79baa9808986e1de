package nbt

import (
	"errors"
	"fmt"

	"github.com/wippyai/nbt-compare/nbt/internal/cursor"
)

// Decoding errors returned by Parse. All are terminal for the decode
// attempt; there are no partial results.
var (
	// ErrInvalidRoot is returned when the first byte of a document is
	// not the Compound tag ID.
	ErrInvalidRoot = errors.New("root tag is not a compound")

	// ErrUnexpectedEOF is returned when fewer bytes remain than a
	// decoding step requires.
	ErrUnexpectedEOF = cursor.ErrUnexpectedEOF

	// ErrUnknownTag is returned for a tag ID outside the closed set,
	// or for an End element type in a non-empty list.
	ErrUnknownTag = errors.New("unknown tag id")

	// ErrOverflow is returned when a declared array or list byte
	// length, computed as count times element width, exceeds the
	// addressable size.
	ErrOverflow = errors.New("array length overflow")
)

// ParseError annotates a decoding error with the byte offset at which
// it occurred and what was being decoded there.
type ParseError struct {
	Err     error
	Context string
	Offset  int
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("nbt: %s at offset %d: %v", e.Context, e.Offset, e.Err)
	}
	return fmt.Sprintf("nbt: at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
