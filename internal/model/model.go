// Package model holds the controller's in-memory state: monitors,
// workspaces, and the root that ties them together. Only the controller
// (internal/controller) ever mutates it.
package model

import (
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/workspace"
)

// WorkspaceCount is K in the spec: a fixed number of workspace slots per
// monitor.
const WorkspaceCount = 8

// Monitor identifies an OS display and its work area.
type Monitor struct {
	ID                string
	RawWorkArea       geom.Rect
	EffectiveWorkArea geom.Rect // RawWorkArea minus the bar reservation
}

// MonitorState is one monitor's full tiling state.
type MonitorState struct {
	Monitor    Monitor
	Workspaces [WorkspaceCount]*workspace.Workspace
	ActiveWS   int
	MonocleOn  bool
	Layout     layout.Kind
}

// NewMonitorState builds a MonitorState with all workspace slots
// allocated and empty.
func NewMonitorState(m Monitor) *MonitorState {
	ms := &MonitorState{Monitor: m, Layout: layout.BSP}
	for i := range ms.Workspaces {
		ms.Workspaces[i] = workspace.New()
	}
	return ms
}

// Active returns the currently active workspace for this monitor.
func (ms *MonitorState) Active() *workspace.Workspace {
	return ms.Workspaces[ms.ActiveWS]
}

// ModelRoot is the entire mutable tiling state, owned exclusively by the
// controller.
type ModelRoot struct {
	Monitors         []*MonitorState // ordered left-to-right by work-area center-x
	FocusedMonitorIdx int
	FocusedWindow     *layout.Handle
	HiddenBySwitch    map[layout.Handle]bool
	ApplyingLayout    bool

	// FocusedClass/FocusedTitle cache the focused window's class/title for
	// the bar's active_window widget; the controller refreshes them on
	// Focused and TitleChanged events rather than the bar re-querying the
	// OS on every render tick.
	FocusedClass string
	FocusedTitle string
}

// NewModelRoot builds an empty root from already-enumerated monitors,
// ordered left-to-right by work-area center-x.
func NewModelRoot(monitors []Monitor) *ModelRoot {
	states := make([]*MonitorState, len(monitors))
	for i, m := range monitors {
		states[i] = NewMonitorState(m)
	}
	return &ModelRoot{
		Monitors:       states,
		HiddenBySwitch: make(map[layout.Handle]bool),
	}
}

// FocusedMonitor returns the monitor state holding FocusedMonitorIdx.
func (r *ModelRoot) FocusedMonitor() *MonitorState {
	if r.FocusedMonitorIdx < 0 || r.FocusedMonitorIdx >= len(r.Monitors) {
		return nil
	}
	return r.Monitors[r.FocusedMonitorIdx]
}

// MonitorOf finds which monitor/workspace currently holds h, if any.
func (r *ModelRoot) MonitorOf(h layout.Handle) (monitorIdx, wsIdx int, ok bool) {
	for mi, ms := range r.Monitors {
		for wi, ws := range ms.Workspaces {
			if ws.Contains(h) {
				return mi, wi, true
			}
		}
	}
	return 0, 0, false
}

// SetFocus updates FocusedWindow and FocusedMonitorIdx together, honoring
// the invariant that focused_monitor_idx tracks whichever monitor holds
// the focused window.
func (r *ModelRoot) SetFocus(h layout.Handle, monitorIdx int) {
	hh := h
	r.FocusedWindow = &hh
	r.FocusedMonitorIdx = monitorIdx
}

// ClearFocus drops the focused window without changing
// FocusedMonitorIdx — it continues to point at the last monitor whose
// active workspace held focus.
func (r *ModelRoot) ClearFocus() {
	r.FocusedWindow = nil
}
