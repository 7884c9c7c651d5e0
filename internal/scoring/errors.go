package scoring

import "errors"

var (
	// ErrDimensionMismatch is returned when two vectors cannot be compared
	// because one is empty or their lengths differ.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidArgument is returned for malformed control parameters such as topN.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyInput means there is nothing to compare against.
	ErrEmptyInput = errors.New("nothing to compare")
	// ErrJobClosed is returned when a closed job is passed for matching.
	ErrJobClosed = errors.New("job is closed for matching")
)
