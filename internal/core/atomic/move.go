package atomic

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	cp "github.com/otiai10/copy"
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Allow copy+delete when rename(2) reports EXDEV
	Force         bool // Overwrite the destination if it exists
}

// Move renames src to dst. When both paths live on different devices and
// AllowCrossDev is set, it falls back to copying src and removing it.
func Move(src, dst string, opts MoveOptions) error {
	// 1. Validate paths
	if err := validatePaths(src, dst); err != nil {
		return err
	}

	// 2. Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return NewMoveError("create_parent", src, dst, err)
	}

	// 3. Check destination existence if not force mode
	if !opts.Force {
		if _, err := os.Lstat(dst); err == nil {
			return NewMoveError("check_destination", src, dst, ErrDestinationExists)
		}
	}

	// 4. Try rename(2) first
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return NewMoveError("rename", src, dst, err)
	}
	if !opts.AllowCrossDev {
		return NewMoveError("rename", src, dst, ErrCrossDeviceMove)
	}

	// 5. Fall back to copy and delete
	slog.Debug("different partitions detected, falling back to copy-and-delete operation",
		"from", src, "to", dst)
	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory and then deletes the original
func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		// Links inside a trashed directory must come back as links
		OnSymlink: func(src string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		PreserveOwner: os.Geteuid() == 0,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		// Do not leave a half-copied tree behind
		_ = os.RemoveAll(dst)
		return NewMoveError("copy", src, dst, err)
	}

	// If copy succeeds, remove source
	if err := os.RemoveAll(src); err != nil {
		// Try to clean up destination on failure
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return NewMoveError("cleanup", src, dst,
				fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr))
		}
		return NewMoveError("remove_source", src, dst, err)
	}

	return nil
}

// validatePaths performs basic path validation
func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return NewMoveError("stat", src, dst, ErrSourceNotFound)
		}
		return NewMoveError("stat", src, dst, err)
	}

	if filepath.Clean(src) == filepath.Clean(dst) {
		return NewMoveError("stat", src, dst, ErrInvalidDestination)
	}

	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
