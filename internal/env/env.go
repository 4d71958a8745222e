package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"

	appName = "wrm"
)

var (
	// WRM_DIR is the base directory holding trash/ and list.json.
	// Empty unless set in the environment; config and defaults fill it in later.
	WRM_DIR string

	WRM_CONFIG_PATH string

	WRM_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	Load()
}

// Load reads the WRM_* variables, falling back to XDG locations.
// Follow https://specifications.freedesktop.org/basedir-spec/latest/
func Load() {
	WRM_DIR = os.Getenv("WRM_DIR")

	WRM_CONFIG_PATH = os.Getenv("WRM_CONFIG_PATH")
	if WRM_CONFIG_PATH == "" {
		WRM_CONFIG_PATH = filepath.Join(xdgDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), appName, "config.yaml")
	}

	WRM_LOG_PATH = os.Getenv("WRM_LOG_PATH")
	if WRM_LOG_PATH == "" {
		WRM_LOG_PATH = filepath.Join(xdgDir("XDG_DATA_HOME", defaultXDGDataDirname), appName, "debug.log")
	}
}

// DefaultDir is the base directory used when neither WRM_DIR nor the
// config file name one.
func DefaultDir() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), appName)
}

func xdgDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(homeDir, fallback)
}
