package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmelosegui/mosaico/internal/overlay"
	"github.com/jmelosegui/mosaico/internal/paths"
)

// latestTagFileName is where a separate, best-effort updater process
// (out of scope per spec.md §1's self-update-downloader non-goal) caches
// the newest release tag it has observed. update only ever reads it.
const latestTagFileName = "latest-tag.txt"

func runUpdate(args []string) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "Report the update as available even if the cached tag isn't newer")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mosaico update [--force]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Compares the running version against the release tag a separate")
		fmt.Fprintln(os.Stderr, "updater process last cached. The download itself is out of scope;")
		fmt.Fprintln(os.Stderr, "this only reports whether one is available.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "update takes no arguments")
		fs.Usage()
		return 2
	}

	tagPath, err := paths.ConfigFile(latestTagFileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := os.ReadFile(tagPath)
	latestTag := ""
	if err == nil {
		latestTag = strings.TrimSpace(string(data))
	} else if !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	checker := overlay.UpdateChecker{CurrentVersion: version, LatestKnownTag: latestTag}
	newer := checker.Newer()

	if *force && newer == "" && latestTag != "" {
		newer = latestTag
	}

	if newer == "" {
		fmt.Printf("mosaico %s is up to date\n", version)
		return 0
	}
	fmt.Printf("mosaico %s: update available: %s\n", version, newer)
	fmt.Println("Download the new release from the project's releases page and reinstall;")
	fmt.Println("mosaico does not install updates itself.")
	return 0
}
