// Package workspace holds the live, in-memory per-workspace window model:
// an ordered handle list plus optional per-split ratio overrides. Nothing
// here is persisted across daemon restarts.
package workspace

import (
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
)

// Workspace is one of the K slots on a monitor.
type Workspace struct {
	handles      []layout.Handle
	splitRatios  map[layout.SplitRange]float64
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{splitRatios: make(map[layout.SplitRange]float64)}
}

// Handles returns the ordered handle list. Callers must not mutate it.
func (w *Workspace) Handles() []layout.Handle {
	return w.handles
}

// Len reports how many handles are tracked.
func (w *Workspace) Len() int { return len(w.handles) }

func (w *Workspace) indexOf(h layout.Handle) int {
	for i, x := range w.handles {
		if x == h {
			return i
		}
	}
	return -1
}

func (w *Workspace) Contains(h layout.Handle) bool { return w.indexOf(h) >= 0 }

// Add appends h if it is not already present.
func (w *Workspace) Add(h layout.Handle) {
	if w.Contains(h) {
		return
	}
	w.handles = append(w.handles, h)
}

// Insert places h at the clamped position i if it is not already present.
func (w *Workspace) Insert(i int, h layout.Handle) {
	if w.Contains(h) {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(w.handles) {
		i = len(w.handles)
	}
	w.handles = append(w.handles, 0)
	copy(w.handles[i+1:], w.handles[i:])
	w.handles[i] = h
	w.pruneRatios()
}

// Remove deletes h if present and prunes any split-ratio range it
// invalidates.
func (w *Workspace) Remove(h layout.Handle) {
	i := w.indexOf(h)
	if i < 0 {
		return
	}
	w.handles = append(w.handles[:i], w.handles[i+1:]...)
	w.pruneRatios()
}

// Swap exchanges the handles at positions i and j.
func (w *Workspace) Swap(i, j int) {
	if i < 0 || j < 0 || i >= len(w.handles) || j >= len(w.handles) {
		return
	}
	w.handles[i], w.handles[j] = w.handles[j], w.handles[i]
}

// pruneRatios removes any override whose range no longer fits the current
// handle count — spec requires this whenever the handle count changes.
func (w *Workspace) pruneRatios() {
	n := len(w.handles)
	for r := range w.splitRatios {
		if r.End > n {
			delete(w.splitRatios, r)
		}
	}
}

// ClearSplitRatios drops every override (used by Retile).
func (w *Workspace) ClearSplitRatios() {
	w.splitRatios = make(map[layout.SplitRange]float64)
}

// AdjustSplitRatio nudges the ratio of the range containing focused by
// delta (positive grows the primary partition), clamped to [0.1, 0.9].
func (w *Workspace) AdjustSplitRatio(focused layout.Handle, delta float64, defaultRatio float64) {
	idx := w.indexOf(focused)
	if idx < 0 {
		return
	}
	rng, ratio := w.rangeContaining(idx, defaultRatio)
	ratio += delta
	if ratio < 0.1 {
		ratio = 0.1
	}
	if ratio > 0.9 {
		ratio = 0.9
	}
	w.splitRatios[rng] = ratio
}

// rangeContaining finds the split range the handle at idx falls under,
// defaulting to the single-handle-to-end range if there is no override.
func (w *Workspace) rangeContaining(idx int, defaultRatio float64) (layout.SplitRange, float64) {
	for r, ratio := range w.splitRatios {
		if idx >= r.Start && idx < r.End {
			return r, ratio
		}
	}
	return layout.SplitRange{Start: idx, End: len(w.handles)}, defaultRatio
}

// ComputeLayout delegates to the layout package using the current handle
// order and split-ratio overrides.
func (w *Workspace) ComputeLayout(kind layout.Kind, workArea geom.Rect, gap int, ratio float64) []layout.Placement {
	return layout.Compute(kind, w.handles, workArea, layout.Params{
		Gap:       gap,
		Ratio:     ratio,
		Overrides: w.splitRatios,
	})
}
