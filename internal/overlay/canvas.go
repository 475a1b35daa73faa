// Package overlay implements the two layered-window render loops C12
// (focus border) and C13 (status bar) share the winapi.LayeredWindow/
// Buffer primitives for.
package overlay

import (
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

func toRGBA(c theme.RGBA) winapi.BGRA {
	return winapi.BGRA{B: c.B, G: c.G, R: c.R, A: c.A}
}

func toWinRect(r geom.Rect) winapi.Rect {
	return winapi.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// inRoundedRect reports whether (x, y) lies inside a w×h rounded
// rectangle of corner radius rad.
func inRoundedRect(x, y, w, h, rad int) bool {
	if rad <= 0 {
		return x >= 0 && y >= 0 && x < w && y < h
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	// Corners are clipped by a circle of radius rad centered rad pixels in
	// from each edge; everywhere else is inside by construction.
	cx, cy := 0, 0
	switch {
	case x < rad && y < rad:
		cx, cy = rad, rad
	case x >= w-rad && y < rad:
		cx, cy = w-rad-1, rad
	case x < rad && y >= h-rad:
		cx, cy = rad, h-rad-1
	case x >= w-rad && y >= h-rad:
		cx, cy = w-rad-1, h-rad-1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= rad*rad
}

// fillRoundedRect paints every pixel of buf whose local coordinate lies
// inside a rounded rectangle of the buffer's own dimensions with color.
func fillRoundedRect(buf *winapi.Buffer, rad int, color winapi.BGRA) {
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			if inRoundedRect(x, y, buf.W, buf.H, rad) {
				buf.Set(x, y, color)
			}
		}
	}
}

// cornerRadius maps the three configured corner styles to their pixel
// radius, per spec.md's square=0/small=8/round=16 table.
func cornerRadius(style winapi.CornerStyle) int {
	switch style {
	case winapi.CornerRound:
		return 16
	case winapi.CornerSmall:
		return 8
	default:
		return 0
	}
}
