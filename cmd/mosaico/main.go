// Command mosaico is the daemon's process entry point and its CLI, the
// external collaborator spec.md §6 describes: it only ever talks to a
// running daemon through internal/control, or performs local,
// daemon-independent checks (init, doctor, autostart). It never touches
// internal/model directly — that invariant belongs to the controller
// alone.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jmelosegui/mosaico/internal/autostart"
	"github.com/jmelosegui/mosaico/internal/control"
	"github.com/jmelosegui/mosaico/internal/daemon"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "init":
		os.Exit(runInit(os.Args[2:]))
	case "start":
		os.Exit(runStart(os.Args[2:]))
	case "stop":
		os.Exit(runStop(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "doctor":
		os.Exit(runDoctor(os.Args[2:]))
	case "autostart":
		os.Exit(runAutostart(os.Args[2:]))
	case "update":
		os.Exit(runUpdate(os.Args[2:]))
	case "action":
		os.Exit(runAction(os.Args[2:]))
	case "debug":
		os.Exit(runDebug(os.Args[2:]))
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mosaico <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init                       Write default config files if absent")
	fmt.Fprintln(w, "  start                      Run the daemon (foreground)")
	fmt.Fprintln(w, "  stop                       Ask a running daemon to stop")
	fmt.Fprintln(w, "  status                     Show daemon status")
	fmt.Fprintln(w, "  doctor                     Diagnose common setup problems")
	fmt.Fprintln(w, "  autostart enable|disable|status")
	fmt.Fprintln(w, "                             Manage sign-in autostart")
	fmt.Fprintln(w, "  update [--force]           Check for (and report) a newer release")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  action focus <left|right|up|down>")
	fmt.Fprintln(w, "  action move <left|right|up|down>")
	fmt.Fprintln(w, "  action resize <left|right|up|down>")
	fmt.Fprintln(w, "  action retile")
	fmt.Fprintln(w, "  action toggle-monocle")
	fmt.Fprintln(w, "  action close-focused")
	fmt.Fprintln(w, "  action toggle-float")
	fmt.Fprintln(w, "  action cycle-layout")
	fmt.Fprintln(w, "  action toggle-pause")
	fmt.Fprintln(w, "  action goto-workspace <1..8>")
	fmt.Fprintln(w, "  action send-to-workspace <1..8>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  debug list                 List top-level windows mosaico sees")
	fmt.Fprintln(w, "  debug events               Stream live window events")
	fmt.Fprintln(w, "  debug move <hwnd> <x> <y> <w> <h>")
	fmt.Fprintln(w, "                             Reposition one window directly")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mosaico <command> --help' for command-specific options.")
}

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico init")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Write default config.toml, keybindings.toml, user-rules.toml, and")
		fmt.Fprintln(os.Stderr, "bar.toml into the config directory, skipping any file already present.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "init takes no arguments")
		fs.Usage()
		return 2
	}

	if err := writeDefaultConfigFiles(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico start")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the daemon in the foreground until stopped.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "start takes no arguments")
		fs.Usage()
		return 2
	}

	if control.Probe() {
		fmt.Fprintln(os.Stderr, "mosaico: daemon already running")
		return 1
	}

	d, err := daemon.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := d.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStop(args []string) int {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico stop")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "stop takes no arguments")
		fs.Usage()
		return 2
	}

	if !control.Probe() {
		fmt.Fprintln(os.Stderr, "mosaico: daemon not running")
		return 1
	}
	if _, err := (control.Client{}).SendStop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico status")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	if !control.Probe() {
		fmt.Fprintln(os.Stderr, "mosaico: daemon not running")
		return 1
	}
	msg, err := (control.Client{}).SendStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(msg)
	return 0
}

func runAutostart(args []string) int {
	usage := func(w io.Writer) {
		fmt.Fprintln(w, "Usage: mosaico autostart enable|disable|status")
	}
	if len(args) != 1 {
		usage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "enable":
		if err := autostart.Enable(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("autostart: enabled")
		return 0
	case "disable":
		if err := autostart.Disable(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("autostart: disabled")
		return 0
	case "status":
		on, err := autostart.Enabled()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if on {
			fmt.Println("autostart: enabled")
		} else {
			fmt.Println("autostart: disabled")
		}
		return 0
	case "help", "-h", "--help":
		usage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown autostart subcommand: %s\n\n", args[0])
		usage(os.Stderr)
		return 2
	}
}
