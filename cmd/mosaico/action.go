package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jmelosegui/mosaico/internal/action"
	"github.com/jmelosegui/mosaico/internal/control"
)

func printActionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mosaico action focus|move|resize <left|right|up|down>")
	fmt.Fprintln(w, "  mosaico action retile|toggle-monocle|close-focused|toggle-float|cycle-layout|toggle-pause")
	fmt.Fprintln(w, "  mosaico action goto-workspace <1..8>")
	fmt.Fprintln(w, "  mosaico action send-to-workspace <1..8>")
}

// runAction builds the kebab-case wire action string from argv and sends
// it over the control channel, round-tripping it through action.Parse
// first so the CLI rejects the same malformed input the daemon would.
func runAction(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printActionUsage(os.Stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	var kebab string
	switch args[0] {
	case "focus", "move", "resize":
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "action %s requires a direction (left|right|up|down)\n\n", args[0])
			printActionUsage(os.Stderr)
			return 2
		}
		kebab = args[0] + "-" + args[1]
	case "retile", "toggle-monocle", "close-focused", "toggle-float", "cycle-layout", "toggle-pause":
		if len(args) != 1 {
			fmt.Fprintf(os.Stderr, "action %s takes no arguments\n\n", args[0])
			printActionUsage(os.Stderr)
			return 2
		}
		kebab = args[0]
	case "goto-workspace", "send-to-workspace":
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "action %s requires a workspace number (1..8)\n\n", args[0])
			printActionUsage(os.Stderr)
			return 2
		}
		kebab = args[0] + "-" + args[1]
	default:
		fmt.Fprintf(os.Stderr, "Unknown action: %s\n\n", args[0])
		printActionUsage(os.Stderr)
		return 2
	}

	if _, err := action.Parse(kebab); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if !control.Probe() {
		fmt.Fprintln(os.Stderr, "mosaico: daemon not running")
		return 1
	}
	if _, err := (control.Client{}).SendAction(kebab); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
