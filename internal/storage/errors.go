package storage

import "errors"

var (
	// ErrInvalidInput marks a malformed or out-of-domain value. The edit is rejected
	// and the previous state is kept.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExportFailure marks a failed spreadsheet write. No partial file is returned.
	ErrExportFailure = errors.New("export failed")
)
