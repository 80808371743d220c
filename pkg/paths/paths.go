// Package paths provides centralized path resolution for ledge's config,
// state, and runtime files.
//
// Layout (XDG-style):
//
//	Config:  ~/.config/ledge/config.yaml   (override: LEDGE_CONFIG_DIR, XDG_CONFIG_HOME; fallback: /etc/ledge/)
//	State:   ~/.local/state/ledge/         (override: LEDGE_STATE_DIR, XDG_STATE_HOME)
//	Runtime: $XDG_RUNTIME_DIR/ledge/       (fallback: /tmp/ledge-ipc/)
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	configDirOnce   sync.Once
	configDirCached string

	stateDirOnce   sync.Once
	stateDirCached string

	runtimeDirOnce   sync.Once
	runtimeDirCached string
)

// ConfigDir resolves the per-user config directory.
// Priority: LEDGE_CONFIG_DIR env > $XDG_CONFIG_HOME/ledge > ~/.config/ledge
func ConfigDir() string {
	configDirOnce.Do(func() {
		if env := os.Getenv("LEDGE_CONFIG_DIR"); env != "" {
			configDirCached = env
		} else if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDirCached = filepath.Join(xdg, "ledge")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				configDirCached = "."
			} else {
				configDirCached = filepath.Join(home, ".config", "ledge")
			}
		}
	})
	return configDirCached
}

// ConfigFile returns the first config.yaml that exists, checking the per-user
// directory first and /etc/ledge second. When neither exists the error names
// both candidates.
func ConfigFile() (string, error) {
	candidates := []string{
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join("/etc", "ledge", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config file found (checked %s and %s)", candidates[0], candidates[1])
}

// StateDir resolves the state directory (logs live here).
// Priority: LEDGE_STATE_DIR env > $XDG_STATE_HOME/ledge > ~/.local/state/ledge
func StateDir() string {
	stateDirOnce.Do(func() {
		if env := os.Getenv("LEDGE_STATE_DIR"); env != "" {
			stateDirCached = env
		} else if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			stateDirCached = filepath.Join(xdg, "ledge")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				stateDirCached = "."
			} else {
				stateDirCached = filepath.Join(home, ".local", "state", "ledge")
			}
		}
	})
	return stateDirCached
}

// RuntimeDir resolves the directory holding per-bar IPC sockets.
// Priority: $XDG_RUNTIME_DIR/ledge > /tmp/ledge-ipc
func RuntimeDir() string {
	runtimeDirOnce.Do(func() {
		if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
			runtimeDirCached = filepath.Join(xdg, "ledge")
		} else {
			runtimeDirCached = filepath.Join(os.TempDir(), "ledge-ipc")
		}
	})
	return runtimeDirCached
}

// SocketPath returns the IPC socket path for a named bar.
func SocketPath(bar string) string {
	return filepath.Join(RuntimeDir(), bar)
}

// StatePath returns the full path to a state file (e.g. "main.log").
func StatePath(filename string) string {
	return filepath.Join(StateDir(), filename)
}

// EnsureStateDir creates the state directory if it doesn't exist and returns its path.
func EnsureStateDir() (string, error) {
	dir := StateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return dir, nil
}

// EnsureRuntimeDir creates the runtime directory if it doesn't exist and returns its path.
func EnsureRuntimeDir() (string, error) {
	dir := RuntimeDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create runtime dir %s: %w", dir, err)
	}
	return dir, nil
}

// ResetForTest clears cached values so tests can re-run resolution logic.
// Only use in tests.
func ResetForTest() {
	configDirOnce = sync.Once{}
	configDirCached = ""
	stateDirOnce = sync.Once{}
	stateDirCached = ""
	runtimeDirOnce = sync.Once{}
	runtimeDirCached = ""
}
