// Package paths resolves the filesystem locations spec.md's §6
// "Persisted state"/"Environment" sections name: the four TOML config
// files under the home config directory and the daemon pid file under
// local app data. Adapted from the teacher's internal/runtimepath
// (which resolved a Unix XDG runtime dir for its socket and workspace
// registry) onto Windows' %LOCALAPPDATA%/home-config convention, since
// Mosaico's control channel is a named pipe with no filesystem path of
// its own.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "mosaico"

// ConfigDir returns "~/.config/mosaico", creating it if absent.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("paths: home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("paths: create config dir: %w", err)
	}
	return dir, nil
}

// LocalAppDataDir returns "%LOCALAPPDATA%/mosaico", falling back to a
// home-relative directory when LOCALAPPDATA is unset (non-Windows dev
// builds), creating it if absent.
func LocalAppDataDir() (string, error) {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("paths: home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("paths: create local app data dir: %w", err)
	}
	return dir, nil
}

// PidFile returns the path of the daemon's pid file.
func PidFile() (string, error) {
	dir, err := LocalAppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".pid"), nil
}

// ConfigFile returns the path of the named file (such as "config.toml",
// "keybindings.toml", "rules.toml", "user-rules.toml" or "bar.toml")
// under ConfigDir.
func ConfigFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
