// Package theme resolves the bar/border color config against the
// Catppuccin flavor tables, and the empty-string "use theme default"
// convention spec.md's §6 config section describes.
package theme

import (
	"fmt"
	"strings"

	catppuccin "github.com/catppuccin/go"
)

// Flavor is the configured palette, one of latte/frappe/macchiato/mocha.
type Flavor string

const (
	Latte     Flavor = "latte"
	Frappe    Flavor = "frappe"
	Macchiato Flavor = "macchiato"
	Mocha     Flavor = "mocha"
)

func (f Flavor) resolve() catppuccin.Flavor {
	switch f {
	case Frappe:
		return catppuccin.Frappe
	case Macchiato:
		return catppuccin.Macchiato
	case Mocha:
		return catppuccin.Mocha
	default:
		return catppuccin.Latte
	}
}

// RGBA is a border/bar-ready color.
type RGBA struct {
	R, G, B, A byte
}

// Defaults a flavor's fixed role colors used when a config slot is left
// empty: the focused-border color comes from "blue", the monocle-border
// color from "mauve", and the bar background from "base".
func (f Flavor) FocusedBorder() RGBA  { return fromColor(f.resolve().Blue) }
func (f Flavor) MonocleBorder() RGBA  { return fromColor(f.resolve().Mauve) }
func (f Flavor) BarBackground() RGBA  { return fromColor(f.resolve().Base) }
func (f Flavor) BarForeground() RGBA  { return fromColor(f.resolve().Text) }
func (f Flavor) WorkspaceActive() RGBA { return fromColor(f.resolve().Green) }

func fromColor(c catppuccin.Color) RGBA {
	return RGBA{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B, A: 255}
}

// Resolve parses a config color slot: "" means "apply theme default for
// this slot" (the caller supplies the default), "#RRGGBB" parses as a
// literal hex color, and any other bare word is looked up as a named
// theme color (e.g. "peach", "red") within the active flavor.
func Resolve(f Flavor, value string, fallback RGBA) (RGBA, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if strings.HasPrefix(value, "#") {
		return parseHex(value)
	}
	named, err := namedColor(f, value)
	if err != nil {
		return RGBA{}, err
	}
	return named, nil
}

func parseHex(s string) (RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGBA{R: byte(r), G: byte(g), B: byte(b), A: 255}, nil
}

func namedColor(f Flavor, name string) (RGBA, error) {
	flavor := f.resolve()
	switch strings.ToLower(name) {
	case "rosewater":
		return fromColor(flavor.Rosewater), nil
	case "flamingo":
		return fromColor(flavor.Flamingo), nil
	case "pink":
		return fromColor(flavor.Pink), nil
	case "mauve":
		return fromColor(flavor.Mauve), nil
	case "red":
		return fromColor(flavor.Red), nil
	case "maroon":
		return fromColor(flavor.Maroon), nil
	case "peach":
		return fromColor(flavor.Peach), nil
	case "yellow":
		return fromColor(flavor.Yellow), nil
	case "green":
		return fromColor(flavor.Green), nil
	case "teal":
		return fromColor(flavor.Teal), nil
	case "sky":
		return fromColor(flavor.Sky), nil
	case "sapphire":
		return fromColor(flavor.Sapphire), nil
	case "blue":
		return fromColor(flavor.Blue), nil
	case "lavender":
		return fromColor(flavor.Lavender), nil
	case "text":
		return fromColor(flavor.Text), nil
	case "base":
		return fromColor(flavor.Base), nil
	case "mantle":
		return fromColor(flavor.Mantle), nil
	case "crust":
		return fromColor(flavor.Crust), nil
	default:
		return RGBA{}, fmt.Errorf("unknown theme color %q", name)
	}
}
