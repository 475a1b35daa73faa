// Package autostart manages the "run mosaico at sign-in" Windows Run-key
// entry the CLI's `autostart` subcommand exposes. Grounded on
// mrgoonie-winshot's internal/config/startup.go.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`
	valueName  = "Mosaico"
)

// Enabled reports whether the per-user Run key currently points at any
// path (not necessarily the current executable).
func Enabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return false, nil
		}
		return false, err
	}
	defer key.Close()

	_, _, err = key.GetStringValue(valueName)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Enable points the Run key at the current executable, quoted for paths
// containing spaces, and appends "start" so the entry launches the
// daemon rather than printing CLI help.
func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("autostart: resolve executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("autostart: resolve executable: %w", err)
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("autostart: open registry key: %w", err)
	}
	defer key.Close()

	command := fmt.Sprintf(`"%s" start`, exePath)
	if err := key.SetStringValue(valueName, command); err != nil {
		return fmt.Errorf("autostart: write registry value: %w", err)
	}

	val, _, err := key.GetStringValue(valueName)
	if err != nil {
		return fmt.Errorf("autostart: verify registry write: %w", err)
	}
	if val != command {
		return fmt.Errorf("autostart: registry verification failed: expected %q, got %q", command, val)
	}
	return nil
}

// Disable removes the Run key entry, if present.
func Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return nil
		}
		return fmt.Errorf("autostart: open registry key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(valueName); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("autostart: delete registry value: %w", err)
	}
	return nil
}
