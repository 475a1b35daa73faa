package configio

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Keybinding is one entry of keybindings.toml. Intentionally not
// hot-reloaded: hotkeys bind to the event pump's specific OS thread, so
// a config watcher change to this file is ignored until the next daemon
// restart.
type Keybinding struct {
	Action    string `toml:"action"`
	Key       string `toml:"key"`
	Modifiers []string `toml:"modifiers"`
}

type rawKeybindings struct {
	Binding []Keybinding `toml:"binding"`
}

// LoadKeybindings decodes keybindings.toml once at startup.
func LoadKeybindings(path string) ([]Keybinding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw rawKeybindings
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw.Binding, nil
}

const (
	modShift = 0x0004
	modCtrl  = 0x0002
	modAlt   = 0x0001
	modWin   = 0x0008
)

// ModifierMask translates the TOML modifier name list into the win32
// RegisterHotKey MOD_* bitmask.
func ModifierMask(mods []string) uint32 {
	var mask uint32
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "shift":
			mask |= modShift
		case "ctrl", "control":
			mask |= modCtrl
		case "alt":
			mask |= modAlt
		case "win", "super", "meta":
			mask |= modWin
		}
	}
	return mask
}

// namedVK covers the common named bindable keys. KeyCode maps a
// single-character name 'A'-'Z' or '0'-'9' to its ASCII value, which
// matches the virtual-key code directly; any other name yields 0.
var namedVK = map[string]uint32{
	"left": 0x25, "up": 0x26, "right": 0x27, "down": 0x28,
	"space": 0x20, "enter": 0x0D, "tab": 0x09, "escape": 0x1B,
	"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
	"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
	"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
}

// KeyCode translates a keybindings.toml key name into its win32
// virtual-key code.
func KeyCode(name string) uint32 {
	lower := strings.ToLower(name)
	if vk, ok := namedVK[lower]; ok {
		return vk
	}
	upper := strings.ToUpper(name)
	if len(upper) == 1 {
		c := upper[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return uint32(c)
		}
	}
	return 0
}
