package services

import "errors"

// Failures surfaced by the generator service. All are synchronous and leave
// no stray hashes behind in the registry.
var (
	// ErrUnsupportedFormat rejects a format key with no registered strategy.
	ErrUnsupportedFormat = errors.New("unsupported card format")

	// ErrInvalidCount rejects batch sizes outside the allowed range.
	ErrInvalidCount = errors.New("batch count out of range")

	// ErrExhaustedUniqueSpace reports that the retry cap was hit without
	// finding a hash the session had not already seen. Clearing or rotating
	// the session makes generation possible again.
	ErrExhaustedUniqueSpace = errors.New("unique card space exhausted for session")
)
