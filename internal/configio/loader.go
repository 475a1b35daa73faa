package configio

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig decodes and validates config.toml at path. A missing file
// is not an error — it yields the built-in defaults, matching the
// teacher's "absent file ⇒ DefaultConfig()" convention.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg := buildEffective(raw)
	cfg.Validate()
	return cfg, nil
}
