package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/jmelosegui/mosaico/internal/winapi"
)

func printDebugUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mosaico debug list")
	fmt.Fprintln(w, "  mosaico debug events")
	fmt.Fprintln(w, "  mosaico debug move <hwnd> <x> <y> <w> <h>")
}

func runDebug(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDebugUsage(os.Stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	switch args[0] {
	case "list":
		return runDebugList(args[1:])
	case "events":
		return runDebugEvents(args[1:])
	case "move":
		return runDebugMove(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown debug command: %s\n\n", args[0])
		printDebugUsage(os.Stderr)
		return 2
	}
}

func runDebugList(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "debug list takes no arguments")
		return 2
	}
	for _, h := range winapi.EnumTopLevelWindows() {
		if !winapi.IsVisible(h) || winapi.IsToolWindow(h) {
			continue
		}
		frame, err := winapi.VisibleFrame(h)
		if err != nil {
			continue
		}
		fmt.Printf("0x%x  class=%q  title=%q  rect={%d,%d,%d,%d}\n",
			uint64(h), winapi.Class(h), winapi.Title(h), frame.X, frame.Y, frame.W, frame.H)
	}
	return 0
}

// runDebugEvents registers the event pump with no hotkeys and streams
// translated window events to stdout until Ctrl+C.
func runDebugEvents(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "debug events takes no arguments")
		return 2
	}

	pump := winapi.NewEventPump()
	pumpErr := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		pumpErr <- pump.Run(nil)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	fmt.Println("listening for window events, press Ctrl+C to stop")
	for {
		select {
		case ev, ok := <-pump.Events:
			if !ok {
				return 0
			}
			fmt.Printf("%s handle=0x%x\n", eventKindName(ev.Kind), uint64(ev.Handle))
		case <-sigCh:
			pump.Stop()
			if err := <-pumpErr; err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}
	}
}

func eventKindName(k winapi.WindowEventKind) string {
	switch k {
	case winapi.EvCreated:
		return "created"
	case winapi.EvDestroyed:
		return "destroyed"
	case winapi.EvFocused:
		return "focused"
	case winapi.EvMoved:
		return "moved"
	case winapi.EvMinimized:
		return "minimized"
	case winapi.EvRestored:
		return "restored"
	case winapi.EvTitleChanged:
		return "title-changed"
	default:
		return "unknown"
	}
}

func runDebugMove(args []string) int {
	if len(args) != 5 {
		fmt.Fprintln(os.Stderr, "debug move requires <hwnd> <x> <y> <w> <h>")
		return 2
	}
	hwnd, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid hwnd %q: %v\n", args[0], err)
		return 2
	}
	var coords [4]int
	for i, s := range args[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid integer %q: %v\n", s, err)
			return 2
		}
		coords[i] = n
	}

	h := winapi.Handle(hwnd)
	r := winapi.Rect{X: coords[0], Y: coords[1], W: coords[2], H: coords[3]}
	if err := winapi.SetRect(h, r, winapi.Class(h) == "Chrome_WidgetWin_1" || winapi.Class(h) == "MozillaWindowClass"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	winapi.Invalidate(h)
	return 0
}
