// Package nav implements pure spatial navigation over window placements:
// finding the neighbor in a compass direction, and finding the entry
// window when focus arrives from an adjacent monitor. No OS dependency.
package nav

import (
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
)

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Positioned pairs a handle with its current on-screen rectangle.
type Positioned struct {
	Handle layout.Handle
	Rect   geom.Rect
}

// FindNeighbor returns the handle that should receive focus/the window
// being moved when traveling from focused in direction dir, or false if
// there is none.
//
// Candidates are kept only if their center lies strictly beyond focused's
// along dir, and only if they have positive perpendicular overlap with
// focused (vertical overlap for Left/Right, horizontal overlap for
// Up/Down) — this is what prevents diagonal jumps. Among the remaining
// candidates the one with the smallest edge distance wins; ties break
// topmost for horizontal travel, leftmost for vertical travel.
func FindNeighbor(positions []Positioned, focused layout.Handle, dir Direction) (layout.Handle, bool) {
	var focusedRect geom.Rect
	found := false
	for _, p := range positions {
		if p.Handle == focused {
			focusedRect = p.Rect
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	var bestHandle layout.Handle
	bestDist := -1
	haveBest := false

	for _, p := range positions {
		if p.Handle == focused {
			continue
		}
		if !beyond(focusedRect, p.Rect, dir) {
			continue
		}
		if isHorizontal(dir) {
			if focusedRect.VerticalOverlap(p.Rect) <= 0 {
				continue
			}
		} else {
			if focusedRect.HorizontalOverlap(p.Rect) <= 0 {
				continue
			}
		}

		dist := edgeDistance(focusedRect, p.Rect, dir)
		if !haveBest || dist < bestDist || (dist == bestDist && tieBreakWins(p.Rect, positions, bestHandle, dir)) {
			bestDist = dist
			bestHandle = p.Handle
			haveBest = true
		}
	}

	return bestHandle, haveBest
}

// FindEntry picks which window receives focus when arriving on a monitor
// from the given direction of travel: the topmost window, tie-broken by
// the edge closest to the direction of travel (leftmost entering from the
// left, rightmost entering from the right).
func FindEntry(positions []Positioned, dir Direction) (layout.Handle, bool) {
	if len(positions) == 0 {
		return 0, false
	}

	best := positions[0]
	for _, p := range positions[1:] {
		if p.Rect.Y < best.Rect.Y {
			best = p
			continue
		}
		if p.Rect.Y != best.Rect.Y {
			continue
		}
		switch dir {
		case Left:
			if p.Rect.X < best.Rect.X {
				best = p
			}
		case Right:
			if p.Rect.X > best.Rect.X {
				best = p
			}
		default:
			if p.Rect.X < best.Rect.X {
				best = p
			}
		}
	}
	return best.Handle, true
}

func isHorizontal(dir Direction) bool { return dir == Left || dir == Right }

func beyond(focused, cand geom.Rect, dir Direction) bool {
	switch dir {
	case Left:
		return cand.CenterX() < focused.CenterX()
	case Right:
		return cand.CenterX() > focused.CenterX()
	case Up:
		return cand.CenterY() < focused.CenterY()
	case Down:
		return cand.CenterY() > focused.CenterY()
	}
	return false
}

// edgeDistance is the gap between the two touching edges along dir.
func edgeDistance(focused, cand geom.Rect, dir Direction) int {
	var d int
	switch dir {
	case Left:
		d = focused.X - cand.Right()
	case Right:
		d = cand.X - focused.Right()
	case Up:
		d = focused.Y - cand.Bottom()
	case Down:
		d = cand.Y - focused.Bottom()
	}
	if d < 0 {
		return -d
	}
	return d
}

// tieBreakWins reports whether candidate c should replace the current
// best under equal edge distance: topmost wins for horizontal travel,
// leftmost wins for vertical travel.
func tieBreakWins(c geom.Rect, positions []Positioned, currentBest layout.Handle, dir Direction) bool {
	var bestRect geom.Rect
	for _, p := range positions {
		if p.Handle == currentBest {
			bestRect = p.Rect
			break
		}
	}
	if isHorizontal(dir) {
		return c.Y < bestRect.Y
	}
	return c.X < bestRect.X
}
