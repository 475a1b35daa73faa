package configio

import (
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmelosegui/mosaico/internal/model"
	"github.com/jmelosegui/mosaico/internal/rule"
)

// Paths names the config files C11 uses: Config, UserRules and Bar are
// watched; Community is only read when user rules reload. Keybindings
// are deliberately absent — spec.md requires they never hot-reload.
type Paths struct {
	Config     string
	UserRules  string
	Community  string
	Bar        string
}

// Watcher polls the three watched files every ~2s for modification-time
// changes and, as a faster-path trigger, also wakes on fsnotify events
// for the same files — fsnotify gives low-latency pickup while the
// ticker is the correctness backstop for editors that replace-by-rename
// in a way fsnotify can miss.
type Watcher struct {
	paths   Paths
	mtimes  map[string]time.Time
	fsw     *fsnotify.Watcher
	reloads chan model.Reload
	stop    chan struct{}
}

// NewWatcher opens an fsnotify watch on the parent directory of every
// configured watched path (Config, UserRules, Bar) (watching the directory, not the file, survives
// replace-by-rename saves).
func NewWatcher(paths Paths) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := map[string]bool{}
	for _, p := range []string{paths.Config, paths.UserRules, paths.Bar} {
		if p == "" {
			continue
		}
		dirs[dirName(p)] = true
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			log.Printf("configio: watch %s: %v", d, err)
		}
	}
	return &Watcher{
		paths:   paths,
		mtimes:  map[string]time.Time{},
		fsw:     fsw,
		reloads: make(chan model.Reload, 8),
		stop:    make(chan struct{}),
	}, nil
}

// Reloads exposes the typed Reload channel the controller consumes.
func (w *Watcher) Reloads() <-chan model.Reload { return w.reloads }

// Run blocks, emitting a validated Reload for each changed file, until
// Stop is called. It owns its own 2-second ticker.
func (w *Watcher) Run() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	defer w.fsw.Close()

	w.checkAll()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.checkAll()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.checkOne(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("configio: watch error: %v", err)
		}
	}
}

// Stop ends Run's loop.
func (w *Watcher) Stop() { close(w.stop) }

func (w *Watcher) checkAll() {
	w.checkOne(w.paths.Config)
	w.checkOne(w.paths.UserRules)
	w.checkOne(w.paths.Bar)
}

func (w *Watcher) checkOne(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	prev, seen := w.mtimes[path]
	if seen && !info.ModTime().After(prev) {
		return
	}
	w.mtimes[path] = info.ModTime()
	if !seen {
		// first sight of the file (including at startup) does not
		// itself trigger a reload; checkAll's initial pass primes
		// mtimes without emitting.
		return
	}
	w.emit(path)
}

func (w *Watcher) emit(path string) {
	switch path {
	case w.paths.Config:
		cfg, err := LoadConfig(path)
		if err != nil {
			log.Printf("configio: %s invalid, keeping current config: %v", path, err)
			return
		}
		w.reloads <- model.Reload{Kind: model.ReloadConfig, Data: cfg}
	case w.paths.UserRules:
		user, err := LoadRules(path)
		if err != nil {
			log.Printf("configio: %s invalid, keeping current rules: %v", path, err)
			return
		}
		community := FetchCommunityRules(w.paths.Community)
		w.reloads <- model.Reload{Kind: model.ReloadRules, Data: rule.Merge(user, community)}
	case w.paths.Bar:
		bar, err := LoadBarConfig(path)
		if err != nil {
			log.Printf("configio: %s invalid, keeping current bar config: %v", path, err)
			return
		}
		w.reloads <- model.Reload{Kind: model.ReloadBar, Data: bar}
	}
}

func dirName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[:i]
		}
	}
	return "."
}
