package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/control"
	"github.com/jmelosegui/mosaico/internal/paths"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// checkStatus is one of doctor's four possible check outcomes.
type checkStatus string

const (
	statusOK    checkStatus = "ok"
	statusWarn  checkStatus = "warn"
	statusFail  checkStatus = "fail"
	statusFixed checkStatus = "fixed"
)

type checkResult struct {
	name   string
	status checkStatus
	detail string
}

func runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico doctor")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run local diagnostic checks and classify each ok/warn/fail/fixed.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	results := []checkResult{
		checkPidFile(),
		checkDaemonReachable(),
		checkConfigFiles(),
		checkMonitors(),
	}

	failed := false
	for _, r := range results {
		fmt.Printf("[%s] %s", r.status, r.name)
		if r.detail != "" {
			fmt.Printf(": %s", r.detail)
		}
		fmt.Println()
		if r.status == statusFail {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

// checkPidFile detects a stale pid file — one naming a process that is
// no longer running — and removes it, matching doctor's documented
// "fixed" outcome.
func checkPidFile() checkResult {
	const name = "pid file"
	path, err := paths.PidFile()
	if err != nil {
		return checkResult{name, statusFail, err.Error()}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{name, statusOK, "absent"}
		}
		return checkResult{name, statusFail, err.Error()}
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return checkResult{name, statusWarn, "unreadable contents"}
	}
	if isProcessRunning(pid) {
		return checkResult{name, statusOK, fmt.Sprintf("pid %d running", pid)}
	}
	if err := os.Remove(path); err != nil {
		return checkResult{name, statusFail, fmt.Sprintf("stale pid %d, failed to remove: %v", pid, err)}
	}
	return checkResult{name, statusFixed, fmt.Sprintf("removed stale pid file for pid %d", pid)}
}

func isProcessRunning(pid int) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(h)
	var exitCode uint32
	if err := windows.GetExitCodeProcess(h, &exitCode); err != nil {
		return false
	}
	const stillActive = 259
	return exitCode == stillActive
}

func checkDaemonReachable() checkResult {
	const name = "control channel"
	if control.Probe() {
		return checkResult{name, statusOK, "daemon reachable"}
	}
	return checkResult{name, statusWarn, "daemon not running"}
}

func checkConfigFiles() checkResult {
	const name = "config files"
	dir, err := paths.ConfigDir()
	if err != nil {
		return checkResult{name, statusFail, err.Error()}
	}
	join := func(n string) string { return dir + string(os.PathSeparator) + n }

	if _, err := configio.LoadConfig(join("config.toml")); err != nil {
		return checkResult{name, statusWarn, "config.toml: " + err.Error()}
	}
	if _, err := configio.LoadKeybindings(join("keybindings.toml")); err != nil {
		return checkResult{name, statusWarn, "keybindings.toml: " + err.Error()}
	}
	if _, err := configio.LoadRules(join("user-rules.toml")); err != nil {
		return checkResult{name, statusWarn, "user-rules.toml: " + err.Error()}
	}
	if _, err := configio.LoadBarConfig(join("bar.toml")); err != nil {
		return checkResult{name, statusWarn, "bar.toml: " + err.Error()}
	}
	return checkResult{name, statusOK, "all parse cleanly (or are absent)"}
}

func checkMonitors() checkResult {
	const name = "monitor enumeration"
	monitors, err := winapi.EnumerateMonitors()
	if err != nil {
		return checkResult{name, statusFail, err.Error()}
	}
	if len(monitors) == 0 {
		return checkResult{name, statusFail, "no monitors enumerated"}
	}
	return checkResult{name, statusOK, fmt.Sprintf("%d monitor(s)", len(monitors))}
}
