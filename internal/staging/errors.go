package staging

import (
	"errors"
	"fmt"
)

// ErrBinaryNotSupported is returned when a fragment of a binary file is targeted.
var ErrBinaryNotSupported = errors.New("partial staging is not supported for binary files")

type HunkIndexOutOfRangeError struct {
	Index uint
	Count int
}

func (e *HunkIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("hunk index %d out of range (diff has %d hunks)", e.Index, e.Count)
}

type InvalidLineRangeError struct {
	Start uint
	End   uint
}

func (e *InvalidLineRangeError) Error() string {
	return fmt.Sprintf("invalid line range: start=%d, end=%d", e.Start, e.End)
}

// IsValidation reports whether err rejects the caller's input rather than signalling
// a repository or environment failure.
func IsValidation(err error) bool {
	var hunkErr *HunkIndexOutOfRangeError
	var rangeErr *InvalidLineRangeError
	return errors.Is(err, ErrBinaryNotSupported) || errors.As(err, &hunkErr) || errors.As(err, &rangeErr)
}
