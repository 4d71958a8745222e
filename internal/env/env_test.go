package env

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("WRM_DIR", "")
	t.Setenv("WRM_CONFIG_PATH", "")
	t.Setenv("WRM_LOG_PATH", "")
	t.Cleanup(Load)

	Load()
	if want := "/home/user/.config/wrm/config.yaml"; WRM_CONFIG_PATH != want {
		t.Errorf("WRM_CONFIG_PATH = %q, want %q", WRM_CONFIG_PATH, want)
	}
	if want := "/home/user/.local/share/wrm/debug.log"; WRM_LOG_PATH != want {
		t.Errorf("WRM_LOG_PATH = %q, want %q", WRM_LOG_PATH, want)
	}
	if want := "/home/user/.config/wrm"; DefaultDir() != want {
		t.Errorf("DefaultDir() = %q, want %q", DefaultDir(), want)
	}
	if WRM_DIR != "" {
		t.Errorf("WRM_DIR = %q, want empty", WRM_DIR)
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("WRM_DIR", "/custom/wrm")
	Load()
	if want := filepath.Join("/xdg/config", "wrm", "config.yaml"); WRM_CONFIG_PATH != want {
		t.Errorf("WRM_CONFIG_PATH = %q, want %q", WRM_CONFIG_PATH, want)
	}
	if want := filepath.Join("/xdg/data", "wrm", "debug.log"); WRM_LOG_PATH != want {
		t.Errorf("WRM_LOG_PATH = %q, want %q", WRM_LOG_PATH, want)
	}
	if WRM_DIR != "/custom/wrm" {
		t.Errorf("WRM_DIR = %q", WRM_DIR)
	}

	t.Setenv("WRM_LOG_PATH", "/tmp/wrm.log")
	Load()
	if WRM_LOG_PATH != "/tmp/wrm.log" {
		t.Errorf("WRM_LOG_PATH = %q, want /tmp/wrm.log", WRM_LOG_PATH)
	}
}
