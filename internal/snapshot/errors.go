package snapshot

import "errors"

var (
	// ErrReadSnapshot is returned when a snapshot file cannot be opened or read.
	ErrReadSnapshot = errors.New("failed to read snapshot file")
	// ErrDecodeSnapshot is returned when a snapshot file holds malformed JSON.
	ErrDecodeSnapshot = errors.New("failed to decode snapshot file")
)
