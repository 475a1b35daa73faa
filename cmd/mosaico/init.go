package main

import (
	"fmt"
	"os"

	"github.com/jmelosegui/mosaico/internal/paths"
)

// defaultConfigToml, defaultKeybindingsToml, defaultUserRulesToml, and
// defaultBarToml mirror the field names internal/configio decodes;
// written verbatim rather than marshaled so the file carries a few
// explanatory comments, matching the convention a hand-authored sample
// config file has over a machine-serialized one.
const defaultConfigToml = `[layout]
gap = 8
ratio = 0.5
hiding = "cloak" # cloak | hide | minimize
default = "bsp"  # bsp | columns | rows | vertical-stack
resize_delta = 0.05

[borders]
width = 2
corner_style = "small" # square | small | round
focused = ""           # "" uses the theme default
monocle = ""

[theme]
flavor = "mocha" # latte | frappe | macchiato | mocha

[mouse]
follows_focus = false
focus_follows_mouse = false

[logging]
level = "info"
`

const defaultKeybindingsToml = `[[binding]]
action = "focus-left"
key = "left"
modifiers = ["alt"]

[[binding]]
action = "focus-right"
key = "right"
modifiers = ["alt"]

[[binding]]
action = "focus-up"
key = "up"
modifiers = ["alt"]

[[binding]]
action = "focus-down"
key = "down"
modifiers = ["alt"]

[[binding]]
action = "move-left"
key = "left"
modifiers = ["alt", "shift"]

[[binding]]
action = "move-right"
key = "right"
modifiers = ["alt", "shift"]

[[binding]]
action = "retile"
key = "r"
modifiers = ["alt"]

[[binding]]
action = "toggle-monocle"
key = "f"
modifiers = ["alt"]

[[binding]]
action = "close-focused"
key = "q"
modifiers = ["alt"]

[[binding]]
action = "cycle-layout"
key = "tab"
modifiers = ["alt"]

[[binding]]
action = "toggle-pause"
key = "p"
modifiers = ["alt", "shift"]
`

const defaultUserRulesToml = `# [[rule]]
# match_class = "Explorer"
# manage = false
`

const defaultBarToml = `enabled = false
height = 28
monitor = "all" # all | primary | <index>

[colors]
background = ""
foreground = ""
active = ""

[[left]]
type = "workspaces"

[[center]]
type = "active_window"

[[right]]
type = "clock"
options = { format = "15:04" }
`

// writeDefaultConfigFiles writes the four config files to the config
// directory, skipping any that already exist.
func writeDefaultConfigFiles() error {
	dir, err := paths.ConfigDir()
	if err != nil {
		return err
	}
	files := map[string]string{
		"config.toml":      defaultConfigToml,
		"keybindings.toml": defaultKeybindingsToml,
		"user-rules.toml":  defaultUserRulesToml,
		"bar.toml":         defaultBarToml,
	}
	for name, content := range files {
		path := dir + string(os.PathSeparator) + name
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("init: %s already exists, skipping\n", name)
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("init: stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("init: write %s: %w", path, err)
		}
		fmt.Printf("init: wrote %s\n", name)
	}
	return nil
}
