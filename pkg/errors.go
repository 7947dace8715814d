package msgtree

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTreeSpec     = errors.New("empty tree shape")
	ErrMalformedTreeSpec = errors.New("malformed tree shape")
	ErrDegenerateTree    = errors.New("degenerate tree: root is a leaf")
	ErrInvalidBit        = errors.New("invalid bit")
	ErrIncompletePath    = errors.New("bit message ends in the middle of a code")
	ErrUnknownSymbol     = errors.New("symbol not in code table")
	ErrWrongFileType     = errors.New("wrong file type")
	ErrMissingMessage    = errors.New("no bit message line found")
)

// TreeSpecError reports where a tree shape stopped making sense.
type TreeSpecError struct {
	Pos    int
	Reason string
}

func (e *TreeSpecError) Error() string {
	return fmt.Sprintf("%v at position %d: %s", ErrMalformedTreeSpec, e.Pos, e.Reason)
}

func (e *TreeSpecError) Unwrap() error {
	return ErrMalformedTreeSpec
}

// BitstreamError represents a problem found at a given bit of the message.
type BitstreamError struct {
	Pos int
	Err error
}

func (e *BitstreamError) Error() string {
	return fmt.Sprintf("%v at bit %d", e.Err, e.Pos)
}

func (e *BitstreamError) Unwrap() error {
	return e.Err
}

// ErrOpenFile represents an error when opening an archive file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrFileType represents an archive path without a supported extension.
type ErrFileType struct {
	Filename string
}

func (e *ErrFileType) Error() string {
	return fmt.Sprintf("file %q is the wrong file type, it must have a %s extension", e.Filename, ArchiveExt)
}

func (e *ErrFileType) Unwrap() error {
	return ErrWrongFileType
}
