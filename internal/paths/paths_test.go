package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDir_JoinsHomeAndCreatesDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	want := filepath.Join(home, ".config", "mosaico")
	if got != want {
		t.Fatalf("ConfigDir() = %q, want %q", got, want)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Fatalf("ConfigDir() did not create %q", got)
	}
}

func TestLocalAppDataDir_UsesLOCALAPPDATAWhenSet(t *testing.T) {
	base := t.TempDir()
	t.Setenv("LOCALAPPDATA", base)

	got, err := LocalAppDataDir()
	if err != nil {
		t.Fatalf("LocalAppDataDir() error: %v", err)
	}
	want := filepath.Join(base, "mosaico")
	if got != want {
		t.Fatalf("LocalAppDataDir() = %q, want %q", got, want)
	}
}

func TestLocalAppDataDir_FallsBackToHomeWhenUnset(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	got, err := LocalAppDataDir()
	if err != nil {
		t.Fatalf("LocalAppDataDir() error: %v", err)
	}
	want := filepath.Join(home, ".local", "share", "mosaico")
	if got != want {
		t.Fatalf("LocalAppDataDir() = %q, want %q", got, want)
	}
}

func TestPidFile_NamedUnderLocalAppDataDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("LOCALAPPDATA", base)

	got, err := PidFile()
	if err != nil {
		t.Fatalf("PidFile() error: %v", err)
	}
	want := filepath.Join(base, "mosaico", "mosaico.pid")
	if got != want {
		t.Fatalf("PidFile() = %q, want %q", got, want)
	}
}

func TestConfigFile_NamedUnderConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	got, err := ConfigFile("config.toml")
	if err != nil {
		t.Fatalf("ConfigFile() error: %v", err)
	}
	want := filepath.Join(home, ".config", "mosaico", "config.toml")
	if got != want {
		t.Fatalf("ConfigFile() = %q, want %q", got, want)
	}
}
