package keyValueDb

import "errors"

var (
	// ErrDBClosed is returned when trying to operate on a closed keyValueDb
	ErrDBClosed = errors.New("keyValueDb is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the keyValueDb
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownBackend is returned when the configured backend name is not recognized
	ErrUnknownBackend = errors.New("unknown keyValueDb backend")

	// ErrBatchOperationFailed is returned when a batch operation fails
	ErrBatchOperationFailed = errors.New("batch operation failed")
)
