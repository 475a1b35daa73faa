// Package action defines the Action variant set the hotkey pump, control
// server, and controller all speak, plus its kebab-case wire
// serialization.
package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmelosegui/mosaico/internal/nav"
)

// Kind tags an Action.
type Kind int

const (
	Focus Kind = iota
	Move
	Resize
	Retile
	ToggleMonocle
	CloseFocused
	GoToWorkspace
	SendToWorkspace
	ToggleFloat
	CycleLayout
	TogglePause
)

// Action is a fully-resolved command the controller can apply.
type Action struct {
	Kind      Kind
	Dir       nav.Direction // valid for Focus, Move, Resize
	Workspace int           // 1-based, valid for GoToWorkspace/SendToWorkspace
}

func dirString(d nav.Direction) string {
	switch d {
	case nav.Left:
		return "left"
	case nav.Right:
		return "right"
	case nav.Up:
		return "up"
	case nav.Down:
		return "down"
	}
	return "left"
}

func parseDir(s string) (nav.Direction, error) {
	switch s {
	case "left":
		return nav.Left, nil
	case "right":
		return nav.Right, nil
	case "up":
		return nav.Up, nil
	case "down":
		return nav.Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Render serializes a to its kebab-case wire form, e.g. "focus-left",
// "goto-workspace-3".
func Render(a Action) string {
	switch a.Kind {
	case Focus:
		return "focus-" + dirString(a.Dir)
	case Move:
		return "move-" + dirString(a.Dir)
	case Resize:
		return "resize-" + dirString(a.Dir)
	case Retile:
		return "retile"
	case ToggleMonocle:
		return "toggle-monocle"
	case CloseFocused:
		return "close-focused"
	case GoToWorkspace:
		return fmt.Sprintf("goto-workspace-%d", a.Workspace)
	case SendToWorkspace:
		return fmt.Sprintf("send-to-workspace-%d", a.Workspace)
	case ToggleFloat:
		return "toggle-float"
	case CycleLayout:
		return "cycle-layout"
	case TogglePause:
		return "toggle-pause"
	}
	return ""
}

// Parse is the inverse of Render; it is used by the controller's command
// handler, the CLI and the hotkey id table. It validates workspace
// numbers to [1,8].
func Parse(s string) (Action, error) {
	switch {
	case strings.HasPrefix(s, "focus-"):
		d, err := parseDir(strings.TrimPrefix(s, "focus-"))
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Focus, Dir: d}, nil
	case strings.HasPrefix(s, "move-"):
		d, err := parseDir(strings.TrimPrefix(s, "move-"))
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Move, Dir: d}, nil
	case strings.HasPrefix(s, "resize-"):
		d, err := parseDir(strings.TrimPrefix(s, "resize-"))
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Resize, Dir: d}, nil
	case s == "retile":
		return Action{Kind: Retile}, nil
	case s == "toggle-monocle":
		return Action{Kind: ToggleMonocle}, nil
	case s == "close-focused":
		return Action{Kind: CloseFocused}, nil
	case strings.HasPrefix(s, "goto-workspace-"):
		n, err := parseWorkspace(strings.TrimPrefix(s, "goto-workspace-"))
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: GoToWorkspace, Workspace: n}, nil
	case strings.HasPrefix(s, "send-to-workspace-"):
		n, err := parseWorkspace(strings.TrimPrefix(s, "send-to-workspace-"))
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: SendToWorkspace, Workspace: n}, nil
	case s == "toggle-float":
		return Action{Kind: ToggleFloat}, nil
	case s == "cycle-layout":
		return Action{Kind: CycleLayout}, nil
	case s == "toggle-pause":
		return Action{Kind: TogglePause}, nil
	}
	return Action{}, fmt.Errorf("unknown action %q", s)
}

func parseWorkspace(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid workspace number %q: %w", s, err)
	}
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("workspace number %d out of range [1,8]", n)
	}
	return n, nil
}
