package trash

import "errors"

var (
	// ErrProtectedPath is returned for paths wrm refuses to move or delete
	ErrProtectedPath = errors.New("refusing to touch protected path")

	// ErrNoSuchFile is returned when the target does not exist
	ErrNoSuchFile = errors.New("no such file or directory")

	// ErrUnknownAction is returned when Apply gets an action it cannot run
	ErrUnknownAction = errors.New("unknown action")
)

// FileOperationError wraps a failed filesystem operation on a single path
type FileOperationError struct {
	// Op is the operation that failed (e.g., "remove", "delete", "restore")
	Op string

	// Path is the path being operated on
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *FileOperationError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *FileOperationError) Unwrap() error {
	return e.Err
}

// NewFileOperationError creates a new FileOperationError
func NewFileOperationError(op, path string, err error) error {
	return &FileOperationError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsProtected returns true if the error is ErrProtectedPath
func IsProtected(err error) bool {
	return errors.Is(err, ErrProtectedPath)
}

// IsNoSuchFile returns true if the error is ErrNoSuchFile
func IsNoSuchFile(err error) bool {
	return errors.Is(err, ErrNoSuchFile)
}

// IsFileOperation returns true if err is or wraps a *FileOperationError
func IsFileOperation(err error) bool {
	var fe *FileOperationError
	return errors.As(err, &fe)
}
