package controller

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/action"
	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/model"
	"github.com/jmelosegui/mosaico/internal/nav"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// fakeAdapter is an in-memory WindowAdapter stand-in: no OS calls, just
// bookkeeping of hide state and last-applied rect.
type fakeAdapter struct {
	visible map[layout.Handle]bool
	class   map[layout.Handle]string
	title   map[layout.Handle]string
	rects   map[layout.Handle]geom.Rect
	hidden  map[layout.Handle]bool
	closed  map[layout.Handle]bool
	foreground layout.Handle
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		visible: map[layout.Handle]bool{},
		class:   map[layout.Handle]string{},
		title:   map[layout.Handle]string{},
		rects:   map[layout.Handle]geom.Rect{},
		hidden:  map[layout.Handle]bool{},
		closed:  map[layout.Handle]bool{},
	}
}

func (f *fakeAdapter) Title(h layout.Handle) string       { return f.title[h] }
func (f *fakeAdapter) Class(h layout.Handle) string       { return f.class[h] }
func (f *fakeAdapter) IsVisible(h layout.Handle) bool     { return f.visible[h] }
func (f *fakeAdapter) IsToolWindow(h layout.Handle) bool  { return false }
func (f *fakeAdapter) SetRect(h layout.Handle, r geom.Rect) error {
	f.rects[h] = r
	return nil
}
func (f *fakeAdapter) Invalidate(h layout.Handle) {}
func (f *fakeAdapter) Hide(h layout.Handle, strategy configio.HideStrategy) error {
	f.hidden[h] = true
	return nil
}
func (f *fakeAdapter) Show(h layout.Handle, strategy configio.HideStrategy) error {
	f.hidden[h] = false
	return nil
}
func (f *fakeAdapter) SetTopmost(h layout.Handle, on bool) error { return nil }
func (f *fakeAdapter) SendClose(h layout.Handle) error {
	f.closed[h] = true
	return nil
}
func (f *fakeAdapter) SetCornerPreference(h layout.Handle, style winapi.CornerStyle) {}
func (f *fakeAdapter) SetForeground(h layout.Handle) error {
	f.foreground = h
	return nil
}
func (f *fakeAdapter) VisibleFrame(h layout.Handle) (geom.Rect, error) {
	if r, ok := f.rects[h]; ok {
		return r, nil
	}
	return geom.Rect{}, nil
}

func newTestController() (*Controller, *fakeAdapter) {
	fa := newFakeAdapter()
	root := model.NewModelRoot([]model.Monitor{
		{ID: "A", RawWorkArea: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}, EffectiveWorkArea: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
	})
	cfg := configio.Default()
	return New(root, fa, nil, cfg, &configio.BarConfig{Enabled: false}), fa
}

func TestOnCreatedAddsAndTiles(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)

	ms := c.Root.Monitors[0]
	if ms.Active().Len() != 1 {
		t.Fatalf("expected 1 managed window, got %d", ms.Active().Len())
	}
	if c.Root.FocusedWindow == nil || *c.Root.FocusedWindow != layout.Handle(1) {
		t.Fatalf("expected handle 1 focused, got %v", c.Root.FocusedWindow)
	}
	if fa.rects[1].W != 1904 {
		t.Fatalf("expected single window to fill the gap-inset work area, got %+v", fa.rects[1])
	}
}

func TestOnCreatedIgnoresInvisibleWindow(t *testing.T) {
	c, _ := newTestController()
	c.onCreated(1) // visible defaults false
	if c.Root.Monitors[0].Active().Len() != 0 {
		t.Fatalf("expected invisible window to be ignored")
	}
}

func TestDoFocusMovesBetweenTwoTiles(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	fa.visible[2] = true
	c.onCreated(1)
	c.onCreated(2)

	// BSP with two handles splits left/right; handle 1 is primary (left).
	c.Root.SetFocus(1, 0)
	c.handleAction(action.Action{Kind: action.Focus, Dir: nav.Right})
	if c.Root.FocusedWindow == nil || *c.Root.FocusedWindow != layout.Handle(2) {
		t.Fatalf("expected focus to move to handle 2, got %v", c.Root.FocusedWindow)
	}
	if fa.foreground != 2 {
		t.Fatalf("expected SetForeground(2), got %v", fa.foreground)
	}
}

func TestDoCloseFocusedSendsClose(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)
	c.handleAction(action.Action{Kind: action.CloseFocused})
	if !fa.closed[1] {
		t.Fatalf("expected SendClose(1) to have been called")
	}
}

func TestOnDestroyedRemovesAndClearsFocus(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)
	c.onDestroyed(1)
	if c.Root.Monitors[0].Active().Len() != 0 {
		t.Fatalf("expected window removed after destroy")
	}
	if c.Root.FocusedWindow != nil {
		t.Fatalf("expected focus cleared after destroying the focused window")
	}
}

func TestGoToWorkspaceHidesAndShows(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)

	c.doGoToWorkspace(1)
	if !fa.hidden[1] {
		t.Fatalf("expected handle 1 hidden after leaving its workspace")
	}
	if c.Root.Monitors[0].ActiveWS != 1 {
		t.Fatalf("expected ActiveWS to switch to 1, got %d", c.Root.Monitors[0].ActiveWS)
	}
}

func TestToggleMonocleSingleFullBleed(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	fa.visible[2] = true
	c.onCreated(1)
	c.onCreated(2)
	c.Root.SetFocus(2, 0)

	c.handleAction(action.Action{Kind: action.ToggleMonocle})
	if fa.rects[2].W != 1920 {
		t.Fatalf("expected focused window full-bleed under monocle, got %+v", fa.rects[2])
	}
	if !fa.hidden[1] {
		t.Fatalf("expected the non-focused window hidden under monocle")
	}
}

func TestCommandActionRoundTrip(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)

	reply := make(chan model.CommandResult, 1)
	c.handleCommand(model.Command{Kind: model.CmdAction, Action: "close-focused", Reply: reply})
	result := <-reply
	if !result.OK {
		t.Fatalf("expected ok result, got %+v", result)
	}
	if !fa.closed[1] {
		t.Fatalf("expected close-focused command to send close")
	}
}

func TestCommandActionUnknownErrors(t *testing.T) {
	c, _ := newTestController()
	reply := make(chan model.CommandResult, 1)
	c.handleCommand(model.Command{Kind: model.CmdAction, Action: "bogus", Reply: reply})
	result := <-reply
	if result.OK {
		t.Fatalf("expected error result for unknown action")
	}
}

// TestWorkspaceSwitchRoundTripPreservesHiddenWindows exercises §8's
// hide/show round-trip invariant: GoToWorkspace(a); GoToWorkspace(b);
// GoToWorkspace(a) must restore the original visible set on a, which
// requires hide/minimize-induced Destroyed/Minimized events for the
// parked handles to be ignored rather than evicting them from the model.
func TestWorkspaceSwitchRoundTripPreservesHiddenWindows(t *testing.T) {
	c, fa := newTestController()
	c.Config.Layout.Hiding = configio.HideMinimize
	fa.visible[1] = true
	fa.visible[2] = true
	c.onCreated(1)
	c.onCreated(2)

	c.doGoToWorkspace(1) // a -> b: minimizes 1 and 2, tracks them in HiddenBySwitch
	// The OS fires a Minimized notification for each window the switch itself
	// minimized; it must be ignored, not evict them from workspace 0.
	c.onMinimized(1)
	c.onMinimized(2)
	if c.Root.Monitors[0].Workspaces[0].Len() != 2 {
		t.Fatalf("expected both handles to remain on workspace 0, got %d", c.Root.Monitors[0].Workspaces[0].Len())
	}

	c.doGoToWorkspace(0) // b -> a: restores 1 and 2
	if c.Root.Monitors[0].ActiveWS != 0 {
		t.Fatalf("expected ActiveWS back to 0, got %d", c.Root.Monitors[0].ActiveWS)
	}
	if c.Root.Monitors[0].Workspaces[0].Len() != 2 {
		t.Fatalf("expected both handles visible again on workspace 0, got %d", c.Root.Monitors[0].Workspaces[0].Len())
	}
	if c.Root.HiddenBySwitch[1] || c.Root.HiddenBySwitch[2] {
		t.Fatalf("expected HiddenBySwitch cleared after the handles came back")
	}
}

// TestOnDestroyedIgnoresHiddenBySwitch mirrors the above for the hide
// strategy: a Destroyed notification (EVENT_OBJECT_HIDE) for a handle the
// controller itself hid via a workspace switch must not evict it.
func TestOnDestroyedIgnoresHiddenBySwitch(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)
	c.Root.HiddenBySwitch[1] = true

	c.onDestroyed(1)
	if c.Root.Monitors[0].Workspaces[0].Len() != 1 {
		t.Fatalf("expected handle 1 to remain tracked while hidden by a switch")
	}
}

func newTwoMonitorTestController() (*Controller, *fakeAdapter) {
	fa := newFakeAdapter()
	root := model.NewModelRoot([]model.Monitor{
		{ID: "A", RawWorkArea: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}, EffectiveWorkArea: geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{ID: "B", RawWorkArea: geom.Rect{X: 1920, Y: 0, W: 1920, H: 1080}, EffectiveWorkArea: geom.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	})
	cfg := configio.Default()
	return New(root, fa, nil, cfg, &configio.BarConfig{Enabled: false}), fa
}

// TestOnMovedRelocatesAcrossMonitors covers the dragged-onto-another-monitor
// case §4.14 names for the Moved event: the handle's OS-reported rect now
// sits on a different monitor than the workspace it belongs to, so it must
// move to that monitor's active workspace and both monitors re-layout.
func TestOnMovedRelocatesAcrossMonitors(t *testing.T) {
	c, fa := newTwoMonitorTestController()
	fa.visible[1] = true
	c.onCreated(1)

	fa.rects[1] = geom.Rect{X: 2000, Y: 0, W: 500, H: 500}
	c.onMoved(1)

	if c.Root.Monitors[0].Workspaces[0].Contains(1) {
		t.Fatalf("expected handle 1 removed from monitor A's workspace")
	}
	if !c.Root.Monitors[1].Workspaces[0].Contains(1) {
		t.Fatalf("expected handle 1 added to monitor B's workspace")
	}
	if c.Root.FocusedMonitorIdx != 1 {
		t.Fatalf("expected focus to follow the moved handle to monitor B, got %d", c.Root.FocusedMonitorIdx)
	}
}

// TestOnMovedDroppedDuringApplyingLayout covers the reentrancy guard §8
// requires: a Moved notification produced by the controller's own set_rect
// calls must never mutate the model.
func TestOnMovedDroppedDuringApplyingLayout(t *testing.T) {
	c, fa := newTwoMonitorTestController()
	fa.visible[1] = true
	c.onCreated(1)

	c.Root.ApplyingLayout = true
	fa.rects[1] = geom.Rect{X: 2000, Y: 0, W: 500, H: 500}
	c.onMoved(1)
	c.Root.ApplyingLayout = false

	if !c.Root.Monitors[0].Workspaces[0].Contains(1) {
		t.Fatalf("expected handle 1 to stay put while applying_layout is true")
	}
}

// TestOnFocusedSwitchesInactiveWorkspace covers §4.14's "lives on an
// inactive workspace" case (e.g. clicking a taskbar icon): the monitor
// must switch its active workspace to the focused handle's before
// updating focus, preserving the §8 focus-soundness invariant.
func TestOnFocusedSwitchesInactiveWorkspace(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)
	c.doGoToWorkspace(1) // handle 1 now parked on workspace 0, ws 1 active

	c.onFocused(1)

	ms := c.Root.Monitors[0]
	if ms.ActiveWS != 0 {
		t.Fatalf("expected active workspace to switch back to 0, got %d", ms.ActiveWS)
	}
	if c.Root.FocusedWindow == nil || *c.Root.FocusedWindow != layout.Handle(1) {
		t.Fatalf("expected handle 1 focused, got %v", c.Root.FocusedWindow)
	}
}

// TestSendToWorkspaceFocusesNext covers §4.14's "focus next" requirement:
// after the focused handle leaves the current workspace, the next
// remaining handle on that workspace should receive focus.
func TestSendToWorkspaceFocusesNext(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	fa.visible[2] = true
	c.onCreated(1)
	c.onCreated(2)
	c.Root.SetFocus(1, 0)

	c.doSendToWorkspace(1)

	if c.Root.Monitors[0].Workspaces[0].Contains(1) {
		t.Fatalf("expected handle 1 removed from workspace 0")
	}
	if !c.Root.Monitors[0].Workspaces[1].Contains(1) {
		t.Fatalf("expected handle 1 added to workspace 1")
	}
	if c.Root.FocusedWindow == nil || *c.Root.FocusedWindow != layout.Handle(2) {
		t.Fatalf("expected focus to advance to handle 2, got %v", c.Root.FocusedWindow)
	}
}

// TestTitleChangedUpdatesBarState covers §4.14's "update bar state" for
// TitleChanged: the cached FocusedTitle the bar renders from must track a
// rename of the currently focused window.
func TestTitleChangedUpdatesBarState(t *testing.T) {
	c, fa := newTestController()
	fa.visible[1] = true
	c.onCreated(1)

	fa.title[1] = "renamed"
	c.onTitleChanged(1)
	if c.Root.FocusedTitle != "renamed" {
		t.Fatalf("expected FocusedTitle updated to %q, got %q", "renamed", c.Root.FocusedTitle)
	}
}
