// Package configio loads and hot-reloads Mosaico's TOML configuration:
// config.toml, keybindings.toml, rules.toml/user-rules.toml, and
// bar.toml. It follows the teacher's two-stage raw-decode →
// build-effective → validate/clamp idiom, simplified because Mosaico's
// config has no include-file or workspace layering.
package configio

import (
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// HideStrategy names how a workspace-switch hides its outgoing windows.
type HideStrategy string

const (
	HideCloak    HideStrategy = "cloak"
	HideHide     HideStrategy = "hide"
	HideMinimize HideStrategy = "minimize"
)

// LayoutConfig is the [layout] section of config.toml.
type LayoutConfig struct {
	Gap         int
	Ratio       float64
	Hiding      HideStrategy
	Default     layout.Kind
	ResizeDelta float64
}

// BorderConfig is the [borders] section.
type BorderConfig struct {
	Width       int
	CornerStyle winapi.CornerStyle
	Focused     string // "" | "#RRGGBB" | named theme color
	Monocle     string
}

// ThemeConfig is the [theme] section.
type ThemeConfig struct {
	Flavor theme.Flavor
}

// MouseConfig is the [mouse] section.
type MouseConfig struct {
	FollowsFocus     bool
	FocusFollowsMouse bool
}

// LoggingConfig is the [logging] section.
type LoggingConfig struct {
	Level string
}

// Config is the fully-resolved, clamped config.toml.
type Config struct {
	Layout  LayoutConfig
	Borders BorderConfig
	Theme   ThemeConfig
	Mouse   MouseConfig
	Logging LoggingConfig
}

// Default returns the built-in baseline every raw override layers onto.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Gap:         8,
			Ratio:       0.5,
			Hiding:      HideCloak,
			Default:     layout.BSP,
			ResizeDelta: 0.05,
		},
		Borders: BorderConfig{
			Width:       2,
			CornerStyle: winapi.CornerSmall,
		},
		Theme: ThemeConfig{Flavor: theme.Mocha},
		Mouse: MouseConfig{},
		Logging: LoggingConfig{Level: "info"},
	}
}

// clampInt clamps v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Validate clamps every numeric field to the safe ranges spec.md's §6
// lists. Out-of-range values are clamped, never rejected.
func (c *Config) Validate() {
	c.Layout.Gap = clampInt(c.Layout.Gap, 0, 200)
	c.Layout.Ratio = clampFloat(c.Layout.Ratio, 0.1, 0.9)
	if c.Layout.ResizeDelta <= 0 || c.Layout.ResizeDelta >= 1 {
		c.Layout.ResizeDelta = 0.05
	}
	switch c.Layout.Hiding {
	case HideCloak, HideHide, HideMinimize:
	default:
		c.Layout.Hiding = HideCloak
	}
	c.Borders.Width = clampInt(c.Borders.Width, 0, 32)
	switch c.Theme.Flavor {
	case theme.Latte, theme.Frappe, theme.Macchiato, theme.Mocha:
	default:
		c.Theme.Flavor = theme.Mocha
	}
}
