package fs

import (
	"io/fs"
	"os"
)

// FileType classifies a path without following symlinks.
type FileType int

const (
	TypeFile FileType = iota
	TypeDirectory
	TypeSymlink
	TypeOther
)

func (t FileType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// TypeOfMode maps a file mode to a FileType.
func TypeOfMode(mode fs.FileMode) FileType {
	switch {
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeFile
	default:
		return TypeOther
	}
}

// TypeOf returns the type of path as seen by lstat(2).
func TypeOf(path string) (FileType, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return TypeOther, err
	}
	return TypeOfMode(info.Mode()), nil
}

// Exists reports whether something, including a dangling symlink, is at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
