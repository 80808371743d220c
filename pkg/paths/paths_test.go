package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("LEDGE_CONFIG_DIR", "")
	t.Setenv("LEDGE_STATE_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("HOME", tmp)
	ResetForTest()
	return tmp
}

func TestConfigDir_EnvOverride(t *testing.T) {
	tmp := setupTestDirs(t)
	override := filepath.Join(tmp, "custom-config")
	os.MkdirAll(override, 0755)
	t.Setenv("LEDGE_CONFIG_DIR", override)
	ResetForTest()

	if got := ConfigDir(); got != override {
		t.Errorf("ConfigDir() = %q, want %q", got, override)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	tmp := setupTestDirs(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	ResetForTest()

	want := filepath.Join(tmp, "xdg", "ledge")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_Default(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".config", "ledge")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigFile_PrefersUserDir(t *testing.T) {
	tmp := setupTestDirs(t)
	dir := filepath.Join(tmp, ".config", "ledge")
	os.MkdirAll(dir, 0755)
	want := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(want, []byte("bars: {}\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error: %v", err)
	}
	if got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestConfigFile_MissingNamesCandidates(t *testing.T) {
	setupTestDirs(t)
	_, err := ConfigFile()
	if err == nil {
		t.Fatal("ConfigFile() succeeded with no config present")
	}
	if want := "config.yaml"; !strings.Contains(err.Error(), want) {
		t.Errorf("ConfigFile() error %q does not mention %q", err, want)
	}
}

func TestStateDir_EnvOverride(t *testing.T) {
	tmp := setupTestDirs(t)
	override := filepath.Join(tmp, "custom-state")
	os.MkdirAll(override, 0755)
	t.Setenv("LEDGE_STATE_DIR", override)
	ResetForTest()

	if got := StateDir(); got != override {
		t.Errorf("StateDir() = %q, want %q", got, override)
	}
}

func TestStateDir_Default(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".local", "state", "ledge")
	if got := StateDir(); got != want {
		t.Errorf("StateDir() = %q, want %q", got, want)
	}
}

func TestRuntimeDir_XDG(t *testing.T) {
	tmp := setupTestDirs(t)
	t.Setenv("XDG_RUNTIME_DIR", tmp)
	ResetForTest()

	want := filepath.Join(tmp, "ledge")
	if got := RuntimeDir(); got != want {
		t.Errorf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestRuntimeDir_Fallback(t *testing.T) {
	setupTestDirs(t)
	want := filepath.Join(os.TempDir(), "ledge-ipc")
	if got := RuntimeDir(); got != want {
		t.Errorf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestSocketPath(t *testing.T) {
	tmp := setupTestDirs(t)
	t.Setenv("XDG_RUNTIME_DIR", tmp)
	ResetForTest()

	want := filepath.Join(tmp, "ledge", "main")
	if got := SocketPath("main"); got != want {
		t.Errorf("SocketPath(\"main\") = %q, want %q", got, want)
	}
}

func TestStatePath(t *testing.T) {
	tmp := setupTestDirs(t)
	want := filepath.Join(tmp, ".local", "state", "ledge", "main.log")
	if got := StatePath("main.log"); got != want {
		t.Errorf("StatePath(\"main.log\") = %q, want %q", got, want)
	}
}

func TestEnsureStateDir_Creates(t *testing.T) {
	tmp := setupTestDirs(t)
	expected := filepath.Join(tmp, ".local", "state", "ledge")

	dir, err := EnsureStateDir()
	if err != nil {
		t.Fatalf("EnsureStateDir() error: %v", err)
	}
	if dir != expected {
		t.Errorf("EnsureStateDir() = %q, want %q", dir, expected)
	}
	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		t.Errorf("EnsureStateDir() did not create directory %q", expected)
	}
}

func TestEnsureRuntimeDir_Creates(t *testing.T) {
	tmp := setupTestDirs(t)
	t.Setenv("XDG_RUNTIME_DIR", tmp)
	ResetForTest()
	expected := filepath.Join(tmp, "ledge")

	dir, err := EnsureRuntimeDir()
	if err != nil {
		t.Fatalf("EnsureRuntimeDir() error: %v", err)
	}
	if dir != expected {
		t.Errorf("EnsureRuntimeDir() = %q, want %q", dir, expected)
	}
	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		t.Errorf("EnsureRuntimeDir() did not create directory %q", expected)
	}
}
