// Package daemon implements C15: the process-wide lifecycle that ties
// every other package together — the single-instance guard, the pid
// file, the initial window/monitor enumeration, the five concurrent
// threads described in spec.md §5, and the graceful-shutdown / restore
// -all invariant. It mirrors the teacher's daemon.StateSynchronizer
// wiring shape (one struct owning every long-lived goroutine and the
// channel that feeds the single serialized reconciliation loop).
package daemon

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/jmelosegui/mosaico/internal/action"
	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/control"
	"github.com/jmelosegui/mosaico/internal/controller"
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/model"
	"github.com/jmelosegui/mosaico/internal/overlay"
	"github.com/jmelosegui/mosaico/internal/paths"
	"github.com/jmelosegui/mosaico/internal/rule"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// instanceMutexName is the system-wide named mutex spec.md's §6 names
// for the single-instance guard.
const instanceMutexName = "mosaico"

// Daemon owns every long-lived OS resource and the unified message
// channel the controller drains.
type Daemon struct {
	log *slog.Logger

	guard   *winapi.SingleInstanceGuard
	pidPath string

	ctrl           *controller.Controller
	pump           *winapi.EventPump
	hotkeySpecs    map[int]winapi.HotkeySpec
	hotkeyMap      map[int]action.Action
	ctrlSrv        *control.Server
	serverCommands chan model.Command
	watcher        *configio.Watcher

	border *overlay.Border
	bars   map[string]*overlay.Bar

	metricsMu       sync.Mutex
	cpuPct, ramPct  float64

	msgs chan controller.DaemonMsg
}

// New acquires the single-instance guard, loads every config file,
// enumerates monitors and already-open windows, and wires the
// controller and every overlay. It does not yet start any goroutine —
// call Run for that.
func New() (*Daemon, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	guard, err := winapi.AcquireSingleInstance(instanceMutexName)
	if err != nil {
		return nil, fmt.Errorf("daemon: %w", err)
	}

	pidPath, err := paths.PidFile()
	if err != nil {
		guard.Release()
		return nil, fmt.Errorf("daemon: pid file path: %w", err)
	}
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		guard.Release()
		return nil, fmt.Errorf("daemon: write pid file: %w", err)
	}

	winapi.EnablePerMonitorDPIAwareness()

	cfgPaths, err := resolveConfigPaths()
	if err != nil {
		os.Remove(pidPath)
		guard.Release()
		return nil, err
	}

	cfg, err := configio.LoadConfig(cfgPaths.Config)
	if err != nil {
		logger.Warn("config.toml invalid, using defaults", "err", err)
		cfg = configio.Default()
	}
	bindings, err := configio.LoadKeybindings(cfgPaths.Keybindings)
	if err != nil {
		logger.Warn("keybindings.toml invalid, no hotkeys registered", "err", err)
	}
	userRules, err := configio.LoadRules(cfgPaths.UserRules)
	if err != nil {
		logger.Warn("user-rules.toml invalid, ignoring", "err", err)
	}
	communityRules := configio.FetchCommunityRules(cfgPaths.Community)
	barCfg, err := configio.LoadBarConfig(cfgPaths.Bar)
	if err != nil {
		logger.Warn("bar.toml invalid, bar disabled", "err", err)
		barCfg = &configio.BarConfig{Enabled: false, Height: 28, Monitor: "all"}
	}

	monitors, err := (controller.Win32Monitors{}).Enumerate()
	if err != nil {
		os.Remove(pidPath)
		guard.Release()
		return nil, fmt.Errorf("daemon: enumerate monitors: %w", err)
	}
	if len(monitors) == 0 {
		os.Remove(pidPath)
		guard.Release()
		return nil, fmt.Errorf("daemon: no monitors enumerated")
	}
	root := model.NewModelRoot(monitors)

	ctrl := controller.New(root, controller.Win32Adapter{}, controller.Win32Monitors{}, cfg, barCfg)
	ctrl.Rules = rule.Merge(userRules, communityRules)

	seedInitialWindows(ctrl)

	border, err := overlay.NewBorder()
	if err != nil {
		os.Remove(pidPath)
		guard.Release()
		return nil, fmt.Errorf("daemon: create border overlay: %w", err)
	}
	bars := make(map[string]*overlay.Bar)
	for i, ms := range root.Monitors {
		if !barAppliesToIndex(barCfg, i) {
			continue
		}
		bar, err := overlay.NewBar(ms.Monitor.ID)
		if err != nil {
			logger.Warn("failed to create bar overlay", "monitor", ms.Monitor.ID, "err", err)
			continue
		}
		bars[ms.Monitor.ID] = bar
	}

	srvCommands := make(chan model.Command)
	srv, err := control.Listen(srvCommands)
	if err != nil {
		os.Remove(pidPath)
		guard.Release()
		return nil, fmt.Errorf("daemon: %w", err)
	}

	watcher, err := configio.NewWatcher(configio.Paths{
		Config:    cfgPaths.Config,
		UserRules: cfgPaths.UserRules,
		Community: cfgPaths.Community,
		Bar:       cfgPaths.Bar,
	})
	if err != nil {
		srv.Stop()
		os.Remove(pidPath)
		guard.Release()
		return nil, fmt.Errorf("daemon: %w", err)
	}

	d := &Daemon{
		log:            logger,
		guard:          guard,
		pidPath:        pidPath,
		ctrl:           ctrl,
		pump:           winapi.NewEventPump(),
		hotkeyMap:      make(map[int]action.Action),
		ctrlSrv:        srv,
		serverCommands: srvCommands,
		watcher:        watcher,
		border:         border,
		bars:           bars,
		msgs:           make(chan controller.DaemonMsg, 64),
	}
	d.hotkeySpecs = d.buildHotkeyTable(bindings)
	d.ctrl.OnStateChanged = d.renderBorder

	return d, nil
}

// configPaths bundles the four file locations §6 names plus a
// best-effort community-rules cache path.
type configPaths struct {
	Config      string
	Keybindings string
	UserRules   string
	Community   string
	Bar         string
}

func resolveConfigPaths() (configPaths, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return configPaths{}, err
	}
	join := func(name string) string { return dir + string(os.PathSeparator) + name }
	return configPaths{
		Config:      join("config.toml"),
		Keybindings: join("keybindings.toml"),
		UserRules:   join("user-rules.toml"),
		Community:   join("rules.toml"),
		Bar:         join("bar.toml"),
	}, nil
}

// barAppliesToIndex mirrors controller's own "all"/"primary"/numeric
// -index bar-monitor selection, for the purpose of deciding which
// monitors get a Bar overlay window at all.
func barAppliesToIndex(cfg *configio.BarConfig, idx int) bool {
	if cfg == nil || !cfg.Enabled {
		return false
	}
	switch cfg.Monitor {
	case "", "all":
		return true
	case "primary":
		return idx == 0
	default:
		n, err := strconv.Atoi(cfg.Monitor)
		return err == nil && n == idx
	}
}

// seedInitialWindows performs the once-at-startup enumeration spec.md §1
// requires: existing top-level windows are scanned once and the
// tileable ones are added to their containing monitor's workspace 0.
// Windows created after this point arrive through the normal Created
// event instead.
func seedInitialWindows(ctrl *controller.Controller) {
	var lastSeeded layout.Handle
	var sawAny bool
	for _, wh := range winapi.EnumTopLevelWindows() {
		if !winapi.IsVisible(wh) || winapi.IsToolWindow(wh) {
			continue
		}
		class := winapi.Class(wh)
		title := winapi.Title(wh)
		if !rule.ShouldManage(class, title, ctrl.Rules) {
			continue
		}
		h := layout.Handle(wh)
		mi := monitorIndexFor(ctrl, wh)
		ctrl.Root.Monitors[mi].Workspaces[0].Add(h)
		lastSeeded = h
		sawAny = true
	}
	if sawAny {
		if mi, _, ok := ctrl.Root.MonitorOf(lastSeeded); ok {
			ctrl.Root.SetFocus(lastSeeded, mi)
		}
	}
	ctrl.RetileAll()
}

// monitorIndexFor finds which monitor's raw work area contains h's
// visible-frame center, falling back to monitor 0 when the window
// straddles none (e.g. transiently off-screen at enumeration time).
func monitorIndexFor(ctrl *controller.Controller, h winapi.Handle) int {
	frame, err := winapi.VisibleFrame(h)
	if err != nil {
		return 0
	}
	cx, cy := frame.X+frame.W/2, frame.Y+frame.H/2
	for i, ms := range ctrl.Root.Monitors {
		area := ms.Monitor.RawWorkArea
		if cx >= area.X && cx < area.X+area.W && cy >= area.Y && cy < area.Y+area.H {
			return i
		}
	}
	return 0
}

// buildHotkeyTable assigns sequential hotkey ids to every
// keybindings.toml entry whose action name and key both parse, building
// the id->HotkeySpec table the event pump registers and the id->Action
// table the daemon loop resolves notifications through. Unregistration
// on shutdown stays exact and idempotent because EventPump itself
// remembers the ids it registered.
func (d *Daemon) buildHotkeyTable(bindings []configio.Keybinding) map[int]winapi.HotkeySpec {
	specs := make(map[int]winapi.HotkeySpec, len(bindings))
	id := 1
	for _, b := range bindings {
		a, err := action.Parse(b.Action)
		if err != nil {
			d.log.Warn("keybindings.toml: skipping unknown action", "action", b.Action, "err", err)
			continue
		}
		vk := configio.KeyCode(b.Key)
		if vk == 0 {
			d.log.Warn("keybindings.toml: skipping unbindable key", "key", b.Key)
			continue
		}
		specs[id] = winapi.HotkeySpec{Key: vk, Mods: configio.ModifierMask(b.Modifiers)}
		d.hotkeyMap[id] = a
		id++
	}
	return specs
}

// Run starts every concurrent thread spec.md §5 describes and blocks
// until a Stop command (local or remote) breaks the controller's recv
// loop, at which point it runs the shutdown procedure and returns.
func (d *Daemon) Run() error {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := d.pump.Run(d.hotkeySpecs); err != nil {
			d.log.Warn("event pump exited", "err", err)
		}
	}()

	go func() {
		for ev := range d.pump.Events {
			d.msgs <- controller.DaemonMsg{Event: toModelEvent(ev)}
		}
	}()
	go func() {
		for id := range d.pump.Actions {
			if a, ok := d.hotkeyMap[id]; ok {
				act := a
				d.msgs <- controller.DaemonMsg{Action: &act}
			}
		}
	}()

	go d.ctrlSrv.Serve()
	go func() {
		for cmd := range d.serverCommands {
			c := cmd
			d.msgs <- controller.DaemonMsg{Cmd: &c}
		}
	}()

	go d.watcher.Run()
	go func() {
		for r := range d.watcher.Reloads() {
			reload := r
			d.msgs <- controller.DaemonMsg{Reload: &reload}
		}
	}()

	// Metrics sampling blocks ~200ms per spec.md §5's note that the
	// controller must never stall on a slow OS call; a dedicated
	// goroutine refreshes a cached cpu/ram pair on its own 1-second
	// cadence, and the tick-driven bar render below only ever reads the
	// cache, never samples inline.
	metricsCtx, cancelMetrics := context.WithCancel(context.Background())
	defer cancelMetrics()
	go d.sampleMetricsLoop(metricsCtx)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			d.msgs <- controller.DaemonMsg{Tick: true}
		}
	}()

	for msg := range d.msgs {
		d.ctrl.Handle(msg)
		if msg.Tick {
			d.renderBars()
		}
		if d.ctrl.StopRequested() {
			break
		}
	}

	d.shutdown()
	return nil
}

func (d *Daemon) sampleMetricsLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cpuPct, ramPct := overlay.Sample(ctx)
			d.metricsMu.Lock()
			d.cpuPct, d.ramPct = cpuPct, ramPct
			d.metricsMu.Unlock()
		}
	}
}

func (d *Daemon) cachedMetrics() (cpuPct, ramPct float64) {
	d.metricsMu.Lock()
	defer d.metricsMu.Unlock()
	return d.cpuPct, d.ramPct
}

// renderBorder is the OnStateChanged hook: it repaints the focus border
// (C12) every time the controller dispatches a message, matching
// spec.md §4.12's "render path on every focus change" (a no-op repaint
// when nothing about the focused window moved is cheap and harmless).
func (d *Daemon) renderBorder() {
	cfg := d.ctrl.Config
	root := d.ctrl.Root
	if root.FocusedWindow == nil {
		d.border.Hide()
		return
	}
	h := winapi.Handle(*root.FocusedWindow)
	frame, err := winapi.VisibleFrame(h)
	if err != nil {
		d.border.Hide()
		return
	}
	ms := root.FocusedMonitor()
	flavor := cfg.Theme.Flavor
	def := flavor.FocusedBorder()
	slot := cfg.Borders.Focused
	if ms != nil && ms.MonocleOn {
		def = flavor.MonocleBorder()
		slot = cfg.Borders.Monocle
	}
	color, err := theme.Resolve(flavor, slot, def)
	if err != nil {
		color = def
	}
	if err := d.border.Render(toGeomRect(frame), cfg.Borders.Width, cfg.Borders.CornerStyle, color); err != nil {
		d.log.Warn("border render failed", "err", err)
	}
}

// renderBars is driven once per 1Hz Tick, matching spec.md §4.13's "for
// each render pass" cadence; it reads the cpu/ram sample the background
// sampler last cached rather than blocking the controller goroutine.
func (d *Daemon) renderBars() {
	cpuPct, ramPct := d.cachedMetrics()
	root := d.ctrl.Root
	barCfg := d.ctrl.Bar
	for i, ms := range root.Monitors {
		b, ok := d.bars[ms.Monitor.ID]
		if !ok {
			continue
		}
		state := overlay.RenderState{
			Now:        time.Now(),
			LayoutName: ms.Layout.String(),
			MonocleOn:  ms.MonocleOn,
			Media:      overlay.NoopMediaProvider{},
		}
		for wi, ws := range ms.Workspaces {
			if ws.Len() == 0 && wi != ms.ActiveWS {
				continue
			}
			state.Workspaces = append(state.Workspaces, overlay.WorkspaceState{
				Index:    wi,
				Occupied: ws.Len() > 0,
				Active:   wi == ms.ActiveWS,
			})
		}
		// Per spec.md §9's open question on cross-monitor active_window
		// semantics: a bar shows the focused window's title only when
		// that window is focused on *this* bar's own monitor — there is
		// exactly one global focused window, so a bar on a monitor that
		// doesn't hold it has nothing of its own to show. The class/title
		// themselves come from the controller's own cache, kept current by
		// Focused and TitleChanged events rather than queried live here.
		if root.FocusedWindow != nil && root.FocusedMonitorIdx == i {
			state.FocusedClass = root.FocusedClass
			state.FocusedTitle = root.FocusedTitle
		}
		if err := b.Render(ms.Monitor.RawWorkArea, barCfg, d.ctrl.Config.Theme.Flavor, state, cpuPct, ramPct); err != nil {
			d.log.Warn("bar render failed", "monitor", ms.Monitor.ID, "err", err)
		}
	}
}

// shutdown implements spec.md §4.14's shutdown procedure: restore every
// managed window, hide every overlay, stop every thread, and release
// every OS-owned resource, in that order, before Run returns.
func (d *Daemon) shutdown() {
	d.ctrl.Shutdown()
	d.border.Hide()
	d.border.Destroy()
	for _, b := range d.bars {
		b.Hide()
		b.Destroy()
	}

	d.watcher.Stop()
	d.ctrlSrv.Stop()
	d.pump.Stop()

	if err := os.Remove(d.pidPath); err != nil && !os.IsNotExist(err) {
		log.Printf("daemon: remove pid file: %v", err)
	}
	d.guard.Release()
}

func toGeomRect(r winapi.Rect) geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func toModelEvent(ev winapi.RawWindowEvent) *model.WindowEvent {
	kinds := map[winapi.WindowEventKind]model.WindowEventKind{
		winapi.EvCreated:      model.Created,
		winapi.EvDestroyed:    model.Destroyed,
		winapi.EvFocused:      model.Focused,
		winapi.EvMoved:        model.Moved,
		winapi.EvMinimized:    model.Minimized,
		winapi.EvRestored:     model.Restored,
		winapi.EvTitleChanged: model.TitleChanged,
	}
	return &model.WindowEvent{Kind: kinds[ev.Kind], Handle: layout.Handle(ev.Handle)}
}
