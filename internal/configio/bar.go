package configio

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// WidgetSpec is one [[left]]/[[center]]/[[right]] entry of bar.toml.
type WidgetSpec struct {
	Type    string            `toml:"type"`
	Options map[string]string `toml:"options"`
}

type rawBarColors struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Active     string `toml:"active"`
}

type rawBarConfig struct {
	Enabled *bool        `toml:"enabled"`
	Height  *int         `toml:"height"`
	Monitor *string      `toml:"monitor"` // "all" | "primary" | numeric index
	Colors  rawBarColors `toml:"colors"`
	Left    []WidgetSpec `toml:"left"`
	Center  []WidgetSpec `toml:"center"`
	Right   []WidgetSpec `toml:"right"`
}

// BarConfig is the fully-resolved bar.toml.
type BarConfig struct {
	Enabled bool
	Height  int
	Monitor string
	Colors  rawBarColors
	Left    []WidgetSpec
	Center  []WidgetSpec
	Right   []WidgetSpec
}

// LoadBarConfig decodes bar.toml, defaulting to a disabled bar with a
// 28px strip when absent.
func LoadBarConfig(path string) (*BarConfig, error) {
	cfg := &BarConfig{Enabled: false, Height: 28, Monitor: "all"}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw rawBarConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.Height != nil {
		cfg.Height = clampInt(*raw.Height, 12, 96)
	}
	if raw.Monitor != nil {
		cfg.Monitor = *raw.Monitor
	}
	cfg.Colors = raw.Colors
	cfg.Left = raw.Left
	cfg.Center = raw.Center
	cfg.Right = raw.Right
	return cfg, nil
}
