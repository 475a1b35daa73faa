// Package controller implements the single mutator goroutine (C14): it
// drains a unified channel of window events, resolved actions, IPC
// commands, config reloads, and a 1Hz tick, and is the only code that
// ever touches internal/model's ModelRoot.
package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/jmelosegui/mosaico/internal/action"
	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/model"
	"github.com/jmelosegui/mosaico/internal/nav"
	"github.com/jmelosegui/mosaico/internal/rule"
)

// geomRectInsetTop reserves h pixels off the top of r for a status bar.
func geomRectInsetTop(r geom.Rect, h int) geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
}

// DaemonMsg is the unified message type every producer (event pump,
// hotkey pump, control server, config watcher, ticker) feeds onto the
// controller's one channel.
type DaemonMsg struct {
	Event  *model.WindowEvent
	Action *action.Action
	Cmd    *model.Command
	Reload *model.Reload
	Tick   bool
}

// Controller owns ModelRoot and every side-effecting adapter.
type Controller struct {
	Root     *model.ModelRoot
	Window   WindowAdapter
	Monitors MonitorEnumerator
	Config   *configio.Config
	Rules    []rule.Rule
	Bar      *configio.BarConfig

	// OnStateChanged, when set, runs after every Handle call so the
	// daemon loop can drive the border/bar overlays (C12/C13) off
	// whatever ModelRoot looks like post-dispatch, without the
	// controller importing the overlay package directly.
	OnStateChanged func()

	paused  bool
	stopped bool
}

// StopRequested reports whether a Command(Stop) has been processed; the
// daemon loop polls this after every Handle call to know when to break
// out of its recv loop and run the shutdown procedure.
func (c *Controller) StopRequested() bool { return c.stopped }

// New builds a Controller over an already-enumerated ModelRoot.
func New(root *model.ModelRoot, window WindowAdapter, monitors MonitorEnumerator, cfg *configio.Config, bar *configio.BarConfig) *Controller {
	c := &Controller{Root: root, Window: window, Monitors: monitors, Config: cfg, Bar: bar}
	c.applyBarReservation()
	return c
}

// applyBarReservation resets every monitor's EffectiveWorkArea to its
// RawWorkArea, then subtracts the configured bar height from the top of
// every monitor the bar config selects ("all", "primary" = index 0, or a
// specific index) — done from scratch each time to avoid the reservation
// accumulating across repeated reloads.
func (c *Controller) applyBarReservation() {
	for i, ms := range c.Root.Monitors {
		ms.Monitor.EffectiveWorkArea = ms.Monitor.RawWorkArea
		if c.barAppliesTo(i) {
			area := ms.Monitor.EffectiveWorkArea
			h := c.Bar.Height
			if h > area.H {
				h = area.H
			}
			ms.Monitor.EffectiveWorkArea = geomRectInsetTop(area, h)
		}
	}
}

func (c *Controller) barAppliesTo(monitorIdx int) bool {
	if c.Bar == nil || !c.Bar.Enabled {
		return false
	}
	switch c.Bar.Monitor {
	case "", "all":
		return true
	case "primary":
		return monitorIdx == 0
	default:
		n, err := strconv.Atoi(c.Bar.Monitor)
		return err == nil && n == monitorIdx
	}
}

// Handle dispatches one DaemonMsg. It never panics or returns an error
// upward: every failure is logged and swallowed so the loop never dies.
func (c *Controller) Handle(msg DaemonMsg) {
	switch {
	case msg.Event != nil:
		c.handleEvent(*msg.Event)
	case msg.Action != nil:
		c.handleAction(*msg.Action)
	case msg.Cmd != nil:
		c.handleCommand(*msg.Cmd)
	case msg.Reload != nil:
		c.handleReload(*msg.Reload)
	case msg.Tick:
		c.handleTick()
	}
	if c.OnStateChanged != nil {
		c.OnStateChanged()
	}
}

// --- Events -----------------------------------------------------------

func (c *Controller) handleEvent(ev model.WindowEvent) {
	switch ev.Kind {
	case model.Created:
		c.onCreated(ev.Handle)
	case model.Destroyed:
		c.onDestroyed(ev.Handle)
	case model.Focused:
		c.onFocused(ev.Handle)
	case model.Moved:
		c.onMoved(ev.Handle)
	case model.Minimized:
		c.onMinimized(ev.Handle)
	case model.Restored:
		c.onRestored(ev.Handle)
	case model.TitleChanged:
		c.onTitleChanged(ev.Handle)
	}
}

func (c *Controller) onCreated(h layout.Handle) {
	if c.Root.ApplyingLayout {
		return
	}
	if !c.shouldManage(h) {
		return
	}
	mi := c.Root.FocusedMonitorIdx
	if mi < 0 || mi >= len(c.Root.Monitors) {
		mi = 0
	}
	ms := c.Root.Monitors[mi]
	ms.Active().Add(h)
	c.Root.SetFocus(h, mi)
	c.refreshFocusedWindowInfo()
	c.applyLayoutOn(ms)
}

func (c *Controller) shouldManage(h layout.Handle) bool {
	if !c.Window.IsVisible(h) || c.Window.IsToolWindow(h) {
		return false
	}
	class := c.Window.Class(h)
	title := c.Window.Title(h)
	return rule.ShouldManage(class, title, c.Rules)
}

func (c *Controller) onDestroyed(h layout.Handle) {
	if c.Root.HiddenBySwitch[h] {
		// The controller itself hid h to realize a workspace switch; the
		// hide/minimize this produced must not be mistaken for the window
		// closing.
		return
	}
	mi, wi, ok := c.Root.MonitorOf(h)
	if !ok {
		return
	}
	ms := c.Root.Monitors[mi]
	ms.Workspaces[wi].Remove(h)
	if c.Root.FocusedWindow != nil && *c.Root.FocusedWindow == h {
		c.Root.ClearFocus()
		c.refreshFocusedWindowInfo()
	}
	if wi == ms.ActiveWS {
		c.applyLayoutOn(ms)
	}
}

func (c *Controller) onFocused(h layout.Handle) {
	if c.Root.ApplyingLayout {
		return
	}
	mi, wi, ok := c.Root.MonitorOf(h)
	if !ok {
		// An unmanaged window (dialog, tray flyout, etc.) took focus; leave
		// focus tracking untouched.
		return
	}
	ms := c.Root.Monitors[mi]
	if wi != ms.ActiveWS {
		// The user focused a window living on an inactive workspace (e.g. by
		// clicking its taskbar icon): switch to that workspace first so the
		// focus-soundness invariant — focused_window lies in
		// monitors[focused_monitor_idx].workspaces[active_ws] — keeps holding.
		c.switchActiveWorkspace(ms, wi)
		c.Root.SetFocus(h, mi)
		c.refreshFocusedWindowInfo()
		c.applyLayoutOn(ms)
		return
	}
	c.Root.SetFocus(h, mi)
	c.refreshFocusedWindowInfo()
}

func (c *Controller) onMinimized(h layout.Handle) {
	if c.Root.HiddenBySwitch[h] {
		return
	}
	mi, wi, ok := c.Root.MonitorOf(h)
	if !ok {
		return
	}
	ms := c.Root.Monitors[mi]
	ms.Workspaces[wi].Remove(h)
	if wi == ms.ActiveWS {
		c.applyLayoutOn(ms)
	}
}

// onMoved handles a Move/Size End notification: while the controller is
// itself repositioning windows (applying_layout) this is the programmatic
// echo of set_rect and must be dropped; otherwise, if the window's
// OS-reported monitor no longer matches the workspace it belongs to (the
// user dragged it onto another monitor), relocate it to that monitor's
// active workspace and re-layout both monitors.
func (c *Controller) onMoved(h layout.Handle) {
	if c.Root.ApplyingLayout {
		return
	}
	mi, wi, ok := c.Root.MonitorOf(h)
	if !ok {
		return
	}
	frame, err := c.Window.VisibleFrame(h)
	if err != nil {
		return
	}
	targetIdx := c.monitorIndexForRect(frame)
	if targetIdx < 0 || targetIdx == mi {
		return
	}
	srcMS := c.Root.Monitors[mi]
	dstMS := c.Root.Monitors[targetIdx]
	srcMS.Workspaces[wi].Remove(h)
	dstMS.Active().Add(h)
	if c.Root.FocusedWindow != nil && *c.Root.FocusedWindow == h {
		c.Root.SetFocus(h, targetIdx)
	}
	if wi == srcMS.ActiveWS {
		c.applyLayoutOn(srcMS)
	}
	c.applyLayoutOn(dstMS)
}

// monitorIndexForRect returns the index of the monitor whose raw work area
// contains r's center, or -1 if none does.
func (c *Controller) monitorIndexForRect(r geom.Rect) int {
	cx, cy := r.CenterX(), r.CenterY()
	for i, ms := range c.Root.Monitors {
		area := ms.Monitor.RawWorkArea
		if cx >= area.X && cx < area.X+area.W && cy >= area.Y && cy < area.Y+area.H {
			return i
		}
	}
	return -1
}

// onTitleChanged refreshes the cached title the bar's active_window widget
// renders; it only matters for the currently focused handle since that is
// the only window a bar ever shows per-monitor state for (see the
// cross-monitor active_window open question resolved in internal/daemon).
func (c *Controller) onTitleChanged(h layout.Handle) {
	if c.Root.FocusedWindow != nil && *c.Root.FocusedWindow == h {
		c.refreshFocusedWindowInfo()
	}
}

// refreshFocusedWindowInfo updates Root.FocusedClass/FocusedTitle from the
// current focused window, or clears them if none is focused.
func (c *Controller) refreshFocusedWindowInfo() {
	if c.Root.FocusedWindow == nil {
		c.Root.FocusedClass = ""
		c.Root.FocusedTitle = ""
		return
	}
	h := *c.Root.FocusedWindow
	c.Root.FocusedClass = c.Window.Class(h)
	c.Root.FocusedTitle = c.Window.Title(h)
}

// switchActiveWorkspace realizes a workspace switch on ms without touching
// focus: every handle on the outgoing active workspace is hidden per the
// configured strategy and tracked in HiddenBySwitch (for hide/minimize);
// every handle on the incoming workspace is shown and untracked.
func (c *Controller) switchActiveWorkspace(ms *model.MonitorState, ws int) {
	if ws == ms.ActiveWS {
		return
	}
	strategy := c.Config.Layout.Hiding
	for _, h := range ms.Active().Handles() {
		c.Window.Hide(h, strategy)
		c.Root.HiddenBySwitch[h] = true
	}
	ms.ActiveWS = ws
	for _, h := range ms.Active().Handles() {
		c.Window.Show(h, strategy)
		delete(c.Root.HiddenBySwitch, h)
	}
}

func (c *Controller) onRestored(h layout.Handle) {
	if c.Root.HiddenBySwitch[h] {
		// Still parked on a hidden workspace; restoring visibility here
		// would fight the workspace switch that hid it.
		return
	}
	if _, _, ok := c.Root.MonitorOf(h); ok {
		return
	}
	if !c.shouldManage(h) {
		return
	}
	mi := c.Root.FocusedMonitorIdx
	if mi < 0 || mi >= len(c.Root.Monitors) {
		mi = 0
	}
	ms := c.Root.Monitors[mi]
	ms.Active().Add(h)
	c.applyLayoutOn(ms)
}

// --- Actions ------------------------------------------------------------

func (c *Controller) handleAction(a action.Action) {
	if c.paused && a.Kind != action.TogglePause {
		return
	}
	switch a.Kind {
	case action.Focus:
		c.doFocus(a.Dir)
	case action.Move:
		c.doMove(a.Dir)
	case action.Resize:
		c.doResize(a.Dir)
	case action.Retile:
		c.doRetile()
	case action.ToggleMonocle:
		c.doToggleMonocle()
	case action.CloseFocused:
		c.doCloseFocused()
	case action.GoToWorkspace:
		c.doGoToWorkspace(a.Workspace - 1)
	case action.SendToWorkspace:
		c.doSendToWorkspace(a.Workspace - 1)
	case action.ToggleFloat:
		// Floating windows are simply excluded from tiling by removing them
		// from the workspace's handle list; re-floating back in is done via
		// the next Created/Restored event once the user re-manages it.
		if c.Root.FocusedWindow != nil {
			h := *c.Root.FocusedWindow
			if mi, wi, ok := c.Root.MonitorOf(h); ok {
				ms := c.Root.Monitors[mi]
				ms.Workspaces[wi].Remove(h)
				c.Root.ClearFocus()
				c.refreshFocusedWindowInfo()
				if wi == ms.ActiveWS {
					c.applyLayoutOn(ms)
				}
			}
		}
	case action.CycleLayout:
		c.doCycleLayout()
	case action.TogglePause:
		c.paused = !c.paused
	}
}

func (c *Controller) focusedPositions(ms *model.MonitorState) ([]nav.Positioned, bool) {
	placements := ms.Active().ComputeLayout(ms.Layout, ms.Monitor.EffectiveWorkArea, c.Config.Layout.Gap, c.Config.Layout.Ratio)
	positions := make([]nav.Positioned, len(placements))
	for i, p := range placements {
		positions[i] = nav.Positioned{Handle: p.Handle, Rect: p.Rect}
	}
	return positions, c.Root.FocusedWindow != nil
}

func (c *Controller) doFocus(dir nav.Direction) {
	ms := c.Root.FocusedMonitor()
	if ms == nil || c.Root.FocusedWindow == nil {
		return
	}
	positions, ok := c.focusedPositions(ms)
	if !ok {
		return
	}
	if target, found := nav.FindNeighbor(positions, *c.Root.FocusedWindow, dir); found {
		c.Root.SetFocus(target, c.Root.FocusedMonitorIdx)
		c.refreshFocusedWindowInfo()
		c.Window.SetForeground(target)
		return
	}
	// No neighbor on this monitor: cross to the adjacent monitor in dir, if
	// any, and focus its entry window.
	targetIdx := c.adjacentMonitor(dir)
	if targetIdx < 0 {
		return
	}
	tms := c.Root.Monitors[targetIdx]
	tpositions, _ := c.focusedPositions(tms)
	if entry, found := nav.FindEntry(tpositions, dir); found {
		c.Root.SetFocus(entry, targetIdx)
		c.refreshFocusedWindowInfo()
		c.Window.SetForeground(entry)
	}
}

// adjacentMonitor returns the index of the monitor immediately left/right
// of the focused one in Monitors' left-to-right order; Up/Down has no
// cross-monitor meaning and always returns -1.
func (c *Controller) adjacentMonitor(dir nav.Direction) int {
	switch dir {
	case nav.Left:
		if c.Root.FocusedMonitorIdx > 0 {
			return c.Root.FocusedMonitorIdx - 1
		}
	case nav.Right:
		if c.Root.FocusedMonitorIdx < len(c.Root.Monitors)-1 {
			return c.Root.FocusedMonitorIdx + 1
		}
	}
	return -1
}

func (c *Controller) doMove(dir nav.Direction) {
	ms := c.Root.FocusedMonitor()
	if ms == nil || c.Root.FocusedWindow == nil {
		return
	}
	ws := ms.Active()
	focused := *c.Root.FocusedWindow
	handles := ws.Handles()
	idx := -1
	for i, h := range handles {
		if h == focused {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	positions, _ := c.focusedPositions(ms)
	if target, found := nav.FindNeighbor(positions, focused, dir); found {
		for j, h := range handles {
			if h == target {
				ws.Swap(idx, j)
				c.applyLayoutOn(ms)
				return
			}
		}
	}
}

func (c *Controller) doResize(dir nav.Direction) {
	ms := c.Root.FocusedMonitor()
	if ms == nil || c.Root.FocusedWindow == nil {
		return
	}
	delta := c.Config.Layout.ResizeDelta
	switch dir {
	case nav.Left, nav.Up:
		delta = -delta
	}
	ms.Active().AdjustSplitRatio(*c.Root.FocusedWindow, delta, c.Config.Layout.Ratio)
	c.applyLayoutOn(ms)
}

func (c *Controller) doRetile() {
	ms := c.Root.FocusedMonitor()
	if ms == nil {
		return
	}
	ms.Active().ClearSplitRatios()
	c.applyLayoutOn(ms)
}

func (c *Controller) doToggleMonocle() {
	ms := c.Root.FocusedMonitor()
	if ms == nil {
		return
	}
	ms.MonocleOn = !ms.MonocleOn
	c.applyLayoutOn(ms)
}

func (c *Controller) doCloseFocused() {
	if c.Root.FocusedWindow == nil {
		return
	}
	c.Window.SendClose(*c.Root.FocusedWindow)
}

func (c *Controller) doCycleLayout() {
	ms := c.Root.FocusedMonitor()
	if ms == nil {
		return
	}
	ms.Layout = ms.Layout.Next()
	c.applyLayoutOn(ms)
}

// doGoToWorkspace switches the focused monitor's active workspace to ws
// (0-based), hiding the outgoing workspace's windows and showing the
// incoming one's per the configured hide strategy.
func (c *Controller) doGoToWorkspace(ws int) {
	if ws < 0 || ws >= model.WorkspaceCount {
		return
	}
	m := c.Root.FocusedMonitor()
	if m == nil || ws == m.ActiveWS {
		return
	}
	c.switchActiveWorkspace(m, ws)
	c.Root.ClearFocus()
	if handles := m.Active().Handles(); len(handles) > 0 {
		c.Root.SetFocus(handles[0], c.Root.FocusedMonitorIdx)
	}
	c.refreshFocusedWindowInfo()
	c.applyLayoutOn(m)
}

// doSendToWorkspace moves the focused window to workspace ws (0-based) on
// the same monitor without switching the active workspace.
func (c *Controller) doSendToWorkspace(ws int) {
	if ws < 0 || ws >= model.WorkspaceCount || c.Root.FocusedWindow == nil {
		return
	}
	mi, wi, ok := c.Root.MonitorOf(*c.Root.FocusedWindow)
	if !ok || wi == ws {
		return
	}
	m := c.Root.Monitors[mi]
	h := *c.Root.FocusedWindow
	handles := m.Workspaces[wi].Handles()
	idx := -1
	for i, x := range handles {
		if x == h {
			idx = i
			break
		}
	}
	m.Workspaces[wi].Remove(h)
	m.Workspaces[ws].Add(h)
	if ws != m.ActiveWS {
		c.Window.Hide(h, c.Config.Layout.Hiding)
		c.Root.HiddenBySwitch[h] = true
	}
	// Focus the next handle remaining in the current workspace (the one now
	// at the removed handle's index, or the new last handle if it was the
	// tail), falling back to no focus if the workspace is now empty.
	c.Root.ClearFocus()
	if remaining := m.Workspaces[wi].Handles(); len(remaining) > 0 {
		if idx >= len(remaining) {
			idx = len(remaining) - 1
		}
		c.Root.SetFocus(remaining[idx], mi)
	}
	c.refreshFocusedWindowInfo()
	c.applyLayoutOn(m)
}

// --- apply_layout_on ------------------------------------------------

// applyLayoutOn recomputes and applies the active workspace's layout for
// one monitor: prune stale handles, prune split-ratio overrides, compute
// placements (or a single full-bleed rect under monocle), reposition every
// window, and set the configured corner preference on each one.
func (c *Controller) applyLayoutOn(ms *model.MonitorState) {
	if c.Root.ApplyingLayout {
		return
	}
	c.Root.ApplyingLayout = true
	defer func() { c.Root.ApplyingLayout = false }()

	ws := ms.Active()
	for _, h := range ws.Handles() {
		if !c.Window.IsVisible(h) {
			ws.Remove(h)
		}
	}

	handles := ws.Handles()
	var placements []layout.Placement
	if ms.MonocleOn {
		if c.Root.FocusedWindow != nil {
			for _, h := range handles {
				if h == *c.Root.FocusedWindow {
					placements = []layout.Placement{{Handle: h, Rect: ms.Monitor.EffectiveWorkArea}}
				}
			}
		}
		if placements == nil && len(handles) > 0 {
			placements = []layout.Placement{{Handle: handles[0], Rect: ms.Monitor.EffectiveWorkArea}}
		}
	} else {
		placements = ws.ComputeLayout(ms.Layout, ms.Monitor.EffectiveWorkArea, c.Config.Layout.Gap, c.Config.Layout.Ratio)
	}

	visible := make(map[layout.Handle]bool, len(placements))
	for _, p := range placements {
		visible[p.Handle] = true
		if err := c.Window.SetRect(p.Handle, p.Rect); err != nil {
			log.Printf("controller: set rect %d: %v", p.Handle, err)
			continue
		}
		c.Window.Invalidate(p.Handle)
		c.Window.SetCornerPreference(p.Handle, c.Config.Borders.CornerStyle)
	}
	if ms.MonocleOn {
		for _, h := range handles {
			if !visible[h] {
				c.Window.Hide(h, c.Config.Layout.Hiding)
			}
		}
	}
}

// --- Commands -----------------------------------------------------------

func (c *Controller) handleCommand(cmd model.Command) {
	result := model.CommandResult{OK: true}
	switch cmd.Kind {
	case model.CmdStop:
		// The daemon loop polls StopRequested() after every Handle call
		// to break out of its recv loop; here we only acknowledge so the
		// client doesn't block waiting on the reply.
		c.stopped = true
		result.Message = "stopping"
	case model.CmdStatus:
		result.Message = c.statusString()
	case model.CmdAction:
		a, err := action.Parse(cmd.Action)
		if err != nil {
			result = model.CommandResult{OK: false, Message: err.Error()}
		} else {
			c.handleAction(a)
			result.Message = "ok"
		}
	}
	if cmd.Reply != nil {
		cmd.Reply <- result
	}
}

func (c *Controller) statusString() string {
	total := 0
	for _, ms := range c.Root.Monitors {
		for _, ws := range ms.Workspaces {
			total += ws.Len()
		}
	}
	return fmt.Sprintf("monitors=%d managed=%d paused=%v", len(c.Root.Monitors), total, c.paused)
}

// --- Reloads -----------------------------------------------------------

func (c *Controller) handleReload(r model.Reload) {
	switch r.Kind {
	case model.ReloadConfig:
		if cfg, ok := r.Data.(*configio.Config); ok {
			c.Config = cfg
			for _, ms := range c.Root.Monitors {
				c.applyLayoutOn(ms)
			}
		}
	case model.ReloadRules:
		if rules, ok := r.Data.([]rule.Rule); ok {
			c.Rules = rules
		}
	case model.ReloadBar:
		if bar, ok := r.Data.(*configio.BarConfig); ok {
			c.Bar = bar
			c.applyBarReservation()
			for _, ms := range c.Root.Monitors {
				c.applyLayoutOn(ms)
			}
		}
	}
}

// --- Tick ----------------------------------------------------------------

func (c *Controller) handleTick() {
	// Reserved for periodic housekeeping (stale-handle sweep across
	// unfocused monitors, update check). Nothing to do yet.
}

// RetileAll recomputes and applies the layout of every monitor; used by
// the daemon loop after the once-at-startup initial window enumeration.
func (c *Controller) RetileAll() {
	for _, ms := range c.Root.Monitors {
		c.applyLayoutOn(ms)
	}
}

// Shutdown restores every managed window to a normal, visible, non-topmost
// state before the daemon process exits.
func (c *Controller) Shutdown() {
	for _, ms := range c.Root.Monitors {
		for _, ws := range ms.Workspaces {
			for _, h := range ws.Handles() {
				c.Window.Show(h, c.Config.Layout.Hiding)
				c.Window.SetTopmost(h, false)
			}
		}
	}
}
