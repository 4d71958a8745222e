// Package fs resolves user supplied paths and answers type queries about them.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve expands a leading "~" in path and returns its cleaned absolute
// form. Relative paths are resolved against the current working directory.
// "$" has no special meaning, so file names are taken literally.
func Resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

// ResolveConfigPath is Resolve for paths read from config or the
// environment, where $VAR and ${VAR} are expanded as well.
func ResolveConfigPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	expanded, err = ExpandEnv(expanded)
	if err != nil {
		return "", err
	}
	return Resolve(expanded)
}

// ExpandHome expands a leading tilde.
func ExpandHome(input string) (string, error) {
	if input != "~" && !strings.HasPrefix(input, "~/") {
		return input, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home + strings.TrimPrefix(input, "~"), nil
}

// ExpandEnv expands $VAR and ${VAR} references.
func ExpandEnv(input string) (string, error) {
	result := input

	// e.g. $HOME, ${HOME}
	var sb strings.Builder
	for {
		start := strings.Index(result, "$")
		if start == -1 {
			sb.WriteString(result)
			break
		}
		sb.WriteString(result[:start])
		rest := result[start:]

		var name string
		var end int
		if strings.HasPrefix(rest, "${") {
			closing := strings.Index(rest, "}")
			if closing == -1 {
				return "", fmt.Errorf("unclosed variable brace in input: %s", input)
			}
			name = rest[2:closing]
			end = closing + 1
		} else {
			end = 1
			for end < len(rest) && isShellVarChar(rest[end]) {
				end++
			}
			name = rest[1:end]
		}

		if name == "" {
			// lone "$" is kept as is
			sb.WriteString(rest[:end])
		} else {
			sb.WriteString(os.Getenv(name))
		}
		result = rest[end:]
	}

	return sb.String(), nil
}

func isShellVarChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// IsUnsafePath checks if the given path is unsafe to remove
func IsUnsafePath(path string) (bool, error) {
	// First check the original path before any normalization
	// This preserves the original input like "." or ".."
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	// Clean the path to check for normalized root paths
	cleaned := filepath.Clean(path)
	if cleaned == "/" {
		return true, nil
	}

	// Check double slashes and similar patterns
	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// IsWithin reports whether path is dir itself or lies below it.
// Both arguments are expected to be absolute.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
