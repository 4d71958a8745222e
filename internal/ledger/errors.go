package ledger

import "errors"

var (
	// ErrNotExist is returned when the ledger file is missing
	ErrNotExist = errors.New("ledger file does not exist")

	// ErrCorrupt is returned when the ledger file cannot be decoded
	ErrCorrupt = errors.New("ledger file is corrupt")
)

// StorageError wraps an error with additional context about the ledger operation
type StorageError struct {
	// Op is the operation that failed (e.g., "load", "save")
	Op string

	// Path is the ledger file path
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + " ledger: " + e.Err.Error()
	}
	return e.Op + " ledger " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, path string, err error) error {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsNotExist returns true if the error is ErrNotExist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsCorrupt returns true if the error is ErrCorrupt
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
