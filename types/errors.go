package types

import (
	"fmt"
	"strings"
)

// TruncatedInputError: the stream ended before a declared field or count was satisfied.
type TruncatedInputError struct {
	Path      string
	Offset    int64
	Needed    int64
	Available int64
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("%s: truncated input at offset %d (needed %d bytes, %d available)", e.Path, e.Offset, e.Needed, e.Available)
}

// UnsupportedFormatVersionError: the leading version tag is not registered.
type UnsupportedFormatVersionError struct {
	Document  string
	Got       int32
	Supported []int32
}

func (e *UnsupportedFormatVersionError) Error() string {
	supported := make([]string, len(e.Supported))
	for i, v := range e.Supported {
		supported[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("unsupported %s format version %d (supported: %s)", e.Document, e.Got, strings.Join(supported, ", "))
}

// StructuralMismatchError: a count or boundary check failed.  Raised while
// decoding (bad counts, booleans that are neither 0 nor 1, leftover bytes) and while
// encoding (a graph that does not fit the layout it claims).
type StructuralMismatchError struct {
	Path   string
	Offset int64
	Detail string
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("%s: structural mismatch at offset %d: %s", e.Path, e.Offset, e.Detail)
}

// IOFailureError wraps an error from the underlying stream.
type IOFailureError struct {
	Op  string
	Err error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOFailureError) Unwrap() error {
	return e.Err
}
