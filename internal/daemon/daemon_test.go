package daemon

import (
	"path/filepath"
	"testing"

	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

func TestBarAppliesToIndex(t *testing.T) {
	tests := []struct {
		name string
		cfg  *configio.BarConfig
		idx  int
		want bool
	}{
		{"nil config", nil, 0, false},
		{"disabled", &configio.BarConfig{Enabled: false, Monitor: "all"}, 0, false},
		{"all applies to every index", &configio.BarConfig{Enabled: true, Monitor: "all"}, 3, true},
		{"empty monitor defaults to all", &configio.BarConfig{Enabled: true, Monitor: ""}, 2, true},
		{"primary matches only index 0", &configio.BarConfig{Enabled: true, Monitor: "primary"}, 0, true},
		{"primary rejects non-zero index", &configio.BarConfig{Enabled: true, Monitor: "primary"}, 1, false},
		{"numeric matches its own index", &configio.BarConfig{Enabled: true, Monitor: "2"}, 2, true},
		{"numeric rejects other indices", &configio.BarConfig{Enabled: true, Monitor: "2"}, 1, false},
		{"unparseable monitor never matches", &configio.BarConfig{Enabled: true, Monitor: "bogus"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barAppliesToIndex(tt.cfg, tt.idx); got != tt.want {
				t.Errorf("barAppliesToIndex(%+v, %d) = %v, want %v", tt.cfg, tt.idx, got, tt.want)
			}
		})
	}
}

func TestToGeomRect(t *testing.T) {
	r := winapi.Rect{X: 10, Y: 20, W: 300, H: 400}
	got := toGeomRect(r)
	if got.X != 10 || got.Y != 20 || got.W != 300 || got.H != 400 {
		t.Fatalf("toGeomRect(%+v) = %+v", r, got)
	}
}

func TestToModelEvent_MapsEveryKnownKind(t *testing.T) {
	cases := []winapi.WindowEventKind{
		winapi.EvCreated, winapi.EvDestroyed, winapi.EvFocused, winapi.EvMoved,
		winapi.EvMinimized, winapi.EvRestored, winapi.EvTitleChanged,
	}
	seen := make(map[int]bool)
	for _, k := range cases {
		ev := winapi.RawWindowEvent{Kind: k, Handle: winapi.Handle(0xdead)}
		got := toModelEvent(ev)
		if got == nil {
			t.Fatalf("toModelEvent(%v) = nil", k)
		}
		if uint64(got.Handle) != 0xdead {
			t.Fatalf("toModelEvent(%v).Handle = %x, want dead", k, got.Handle)
		}
		if seen[int(got.Kind)] {
			t.Fatalf("toModelEvent(%v) collided with another kind's mapping", k)
		}
		seen[int(got.Kind)] = true
	}
}

func TestResolveConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	paths, err := resolveConfigPaths()
	if err != nil {
		t.Fatalf("resolveConfigPaths() error: %v", err)
	}
	dir := filepath.Join(home, ".config", "mosaico")
	want := configPaths{
		Config:      filepath.Join(dir, "config.toml"),
		Keybindings: filepath.Join(dir, "keybindings.toml"),
		UserRules:   filepath.Join(dir, "user-rules.toml"),
		Community:   filepath.Join(dir, "rules.toml"),
		Bar:         filepath.Join(dir, "bar.toml"),
	}
	if paths != want {
		t.Fatalf("resolveConfigPaths() = %+v, want %+v", paths, want)
	}
}
