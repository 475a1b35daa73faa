package configio

import (
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

func cornerStyleFromInt(n int) winapi.CornerStyle {
	switch n {
	case 1:
		return winapi.CornerSmall
	case 2:
		return winapi.CornerRound
	default:
		return winapi.CornerSquare
	}
}

func parseFlavor(s string) theme.Flavor {
	switch s {
	case "frappe":
		return theme.Frappe
	case "macchiato":
		return theme.Macchiato
	case "mocha":
		return theme.Mocha
	default:
		return theme.Latte
	}
}

// rawConfig mirrors config.toml's shape for decoding; every field is a
// pointer so the effective-config builder can tell "absent" apart from
// "explicitly zero". Unknown fields are ignored by go-toml/v2 by
// default, matching spec.md's §6 rule.
type rawConfig struct {
	Layout *struct {
		Gap         *int     `toml:"gap"`
		Ratio       *float64 `toml:"ratio"`
		Hiding      *string  `toml:"hiding"`
		Default     *string  `toml:"default"`
		ResizeDelta *float64 `toml:"resize_delta"`
	} `toml:"layout"`
	Borders *struct {
		Width       *int    `toml:"width"`
		CornerStyle *string `toml:"corner_style"`
		Focused     *string `toml:"focused"`
		Monocle     *string `toml:"monocle"`
	} `toml:"borders"`
	Theme *struct {
		Flavor *string `toml:"flavor"`
	} `toml:"theme"`
	Mouse *struct {
		FollowsFocus      *bool `toml:"follows_focus"`
		FocusFollowsMouse *bool `toml:"focus_follows_mouse"`
	} `toml:"mouse"`
	Logging *struct {
		Level *string `toml:"level"`
	} `toml:"logging"`
}

func parseLayoutKind(s string) layout.Kind {
	switch s {
	case "columns":
		return layout.Columns
	case "rows":
		return layout.Rows
	case "vertical-stack":
		return layout.VerticalStack
	default:
		return layout.BSP
	}
}

func parseCornerStyle(s string) int {
	switch s {
	case "small":
		return 1
	case "round":
		return 2
	default:
		return 0
	}
}

// buildEffective layers raw onto the default config. Out-of-range values
// are left for Validate to clamp.
func buildEffective(raw rawConfig) *Config {
	cfg := Default()

	if raw.Layout != nil {
		l := raw.Layout
		if l.Gap != nil {
			cfg.Layout.Gap = *l.Gap
		}
		if l.Ratio != nil {
			cfg.Layout.Ratio = *l.Ratio
		}
		if l.Hiding != nil {
			cfg.Layout.Hiding = HideStrategy(*l.Hiding)
		}
		if l.Default != nil {
			cfg.Layout.Default = parseLayoutKind(*l.Default)
		}
		if l.ResizeDelta != nil {
			cfg.Layout.ResizeDelta = *l.ResizeDelta
		}
	}
	if raw.Borders != nil {
		b := raw.Borders
		if b.Width != nil {
			cfg.Borders.Width = *b.Width
		}
		if b.CornerStyle != nil {
			cfg.Borders.CornerStyle = cornerStyleFromInt(parseCornerStyle(*b.CornerStyle))
		}
		if b.Focused != nil {
			cfg.Borders.Focused = *b.Focused
		}
		if b.Monocle != nil {
			cfg.Borders.Monocle = *b.Monocle
		}
	}
	if raw.Theme != nil && raw.Theme.Flavor != nil {
		cfg.Theme.Flavor = parseFlavor(*raw.Theme.Flavor)
	}
	if raw.Mouse != nil {
		if raw.Mouse.FollowsFocus != nil {
			cfg.Mouse.FollowsFocus = *raw.Mouse.FollowsFocus
		}
		if raw.Mouse.FocusFollowsMouse != nil {
			cfg.Mouse.FocusFollowsMouse = *raw.Mouse.FocusFollowsMouse
		}
	}
	if raw.Logging != nil && raw.Logging.Level != nil {
		cfg.Logging.Level = *raw.Logging.Level
	}
	return cfg
}
