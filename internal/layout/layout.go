// Package layout computes window placements for a monitor's active
// workspace. Every layout kind shares one contract: given an ordered
// sequence of handles and a work rectangle, return placements of the same
// length, in the same order, pairwise non-overlapping and contained in the
// work rectangle.
package layout

import "github.com/jmelosegui/mosaico/internal/geom"

// Handle is an opaque OS top-level window identifier.
type Handle uint64

// Placement pairs a handle with the rectangle it should occupy.
type Placement struct {
	Handle Handle
	Rect   geom.Rect
}

// Kind selects which layout algorithm computes placements for a monitor.
// It is a closed tagged union dispatched with a plain switch — no
// interface, no heap allocation per call.
type Kind int

const (
	BSP Kind = iota
	Columns
	Rows
	VerticalStack
)

// Next returns the layout that follows k in the fixed cycling order.
func (k Kind) Next() Kind {
	return (k + 1) % 4
}

func (k Kind) String() string {
	switch k {
	case BSP:
		return "bsp"
	case Columns:
		return "columns"
	case Rows:
		return "rows"
	case VerticalStack:
		return "vertical-stack"
	default:
		return "bsp"
	}
}

// SplitRange identifies the handle index range [Start, End) a per-split
// ratio override applies to.
type SplitRange struct {
	Start, End int
}

// Params bundles the tunables every layout kind consults.
type Params struct {
	Gap   int
	Ratio float64 // default split ratio, clamped to [0.1, 0.9]
	// Overrides maps a SplitRange to a ratio override for that range; only
	// consulted by BSP.
	Overrides map[SplitRange]float64
}

func clampRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

// Compute dispatches to the algorithm named by kind.
func Compute(kind Kind, handles []Handle, workArea geom.Rect, p Params) []Placement {
	switch kind {
	case Columns:
		return computeColumns(handles, workArea, p.Gap)
	case Rows:
		return computeRows(handles, workArea, p.Gap)
	case VerticalStack:
		return computeVerticalStack(handles, workArea, p.Gap)
	default:
		return computeBSP(handles, workArea, p)
	}
}

// computeBSP implements the recursive binary-space-partition split: even
// split depths divide left/right, odd depths divide top/bottom. The first
// handle of each partition takes the primary share (ratio × area); the
// remainder recurses into the secondary partition one depth deeper.
func computeBSP(handles []Handle, workArea geom.Rect, p Params) []Placement {
	if len(handles) == 0 {
		return nil
	}
	area := workArea.Inset(p.Gap)
	out := make([]Placement, 0, len(handles))
	bspSplit(handles, area, 0, 0, p, &out)
	return out
}

func bspSplit(handles []Handle, area geom.Rect, depth, startIdx int, p Params, out *[]Placement) {
	if len(handles) == 1 {
		*out = append(*out, Placement{Handle: handles[0], Rect: area})
		return
	}

	ratio := p.Ratio
	if p.Overrides != nil {
		if r, ok := p.Overrides[SplitRange{Start: startIdx, End: startIdx + len(handles)}]; ok {
			ratio = r
		}
	}
	ratio = clampRatio(ratio)

	half := p.Gap / 2
	var primary, secondary geom.Rect
	if depth%2 == 0 {
		primaryW := int(float64(area.W) * ratio)
		primary = geom.Rect{X: area.X, Y: area.Y, W: maxInt(primaryW-half, 1), H: area.H}
		secondary = geom.Rect{X: area.X + primaryW, Y: area.Y, W: maxInt(area.W-primaryW, 1), H: area.H}
	} else {
		primaryH := int(float64(area.H) * ratio)
		primary = geom.Rect{X: area.X, Y: area.Y, W: area.W, H: maxInt(primaryH-half, 1)}
		secondary = geom.Rect{X: area.X, Y: area.Y + primaryH, W: area.W, H: maxInt(area.H-primaryH, 1)}
	}

	*out = append(*out, Placement{Handle: handles[0], Rect: primary})
	bspSplit(handles[1:], secondary, depth+1, startIdx+1, p, out)
}

func computeColumns(handles []Handle, workArea geom.Rect, gap int) []Placement {
	n := len(handles)
	if n == 0 {
		return nil
	}
	area := workArea.Inset(gap)
	colW := (area.W - (n-1)*gap) / n
	if colW < 1 {
		colW = 1
	}
	out := make([]Placement, n)
	for i, h := range handles {
		out[i] = Placement{Handle: h, Rect: geom.Rect{
			X: area.X + i*(colW+gap), Y: area.Y, W: colW, H: area.H,
		}}
	}
	return out
}

func computeRows(handles []Handle, workArea geom.Rect, gap int) []Placement {
	n := len(handles)
	if n == 0 {
		return nil
	}
	area := workArea.Inset(gap)
	rowH := (area.H - (n-1)*gap) / n
	if rowH < 1 {
		rowH = 1
	}
	out := make([]Placement, n)
	for i, h := range handles {
		out[i] = Placement{Handle: h, Rect: geom.Rect{
			X: area.X, Y: area.Y + i*(rowH+gap), W: area.W, H: rowH,
		}}
	}
	return out
}

// computeVerticalStack places the first handle full-width on top, the
// remainder sharing a horizontal strip below it.
func computeVerticalStack(handles []Handle, workArea geom.Rect, gap int) []Placement {
	n := len(handles)
	if n == 0 {
		return nil
	}
	area := workArea.Inset(gap)
	if n == 1 {
		return []Placement{{Handle: handles[0], Rect: area}}
	}

	masterH := (area.H - gap) / 2
	out := make([]Placement, n)
	out[0] = Placement{Handle: handles[0], Rect: geom.Rect{X: area.X, Y: area.Y, W: area.W, H: masterH}}

	stack := handles[1:]
	stackY := area.Y + masterH + gap
	stackH := area.H - masterH - gap
	if stackH < 1 {
		stackH = 1
	}
	cellW := (area.W - (len(stack)-1)*gap) / len(stack)
	if cellW < 1 {
		cellW = 1
	}
	for i, h := range stack {
		out[i+1] = Placement{Handle: h, Rect: geom.Rect{
			X: area.X + i*(cellW+gap), Y: stackY, W: cellW, H: stackH,
		}}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
