package codec

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSizeMismatch       = errors.New("byte length does not match shape")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported frame version")
	ErrUnsupportedDType   = errors.New("unsupported element type tag")
	ErrChecksumMismatch   = errors.New("checksum mismatch: frame may be corrupted")
	ErrFrameTooLarge      = errors.New("frame exceeds maximum size")
)

// ValidationError provides detailed information about frame validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "rank_limit", "payload_bounds")
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
