package fs

import (
	iofs "io/fs"
	"path/filepath"
)

// DirSize returns the total size of the regular files under path.
// Symlinks are not followed. A regular file reports its own size.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}
