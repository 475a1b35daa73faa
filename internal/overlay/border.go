package overlay

import (
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

const borderClassName = "MosaicoBorder"

// Border is the focus-border overlay (C12): a single click-through
// layered window whose rasterized frame is rebuilt on every render call.
type Border struct {
	lw *winapi.LayeredWindow
}

// NewBorder creates the (initially 1×1, hidden) border window.
func NewBorder() (*Border, error) {
	lw, err := winapi.CreateLayeredWindow(borderClassName, winapi.Rect{W: 1, H: 1}, true)
	if err != nil {
		return nil, err
	}
	return &Border{lw: lw}, nil
}

// Render paints a rounded-rectangle frame of the given width and corner
// style around visibleFrame, in color, and presents it. Width 0 hides the
// border entirely, per spec.md's C12 contract.
func (b *Border) Render(visibleFrame geom.Rect, width int, style winapi.CornerStyle, color theme.RGBA) error {
	if width <= 0 {
		b.lw.Hide()
		return nil
	}
	outer := geom.Rect{
		X: visibleFrame.X - width,
		Y: visibleFrame.Y - width,
		W: visibleFrame.W + 2*width,
		H: visibleFrame.H + 2*width,
	}
	buf := winapi.NewBuffer(outer.W, outer.H)
	rad := cornerRadius(style)
	col := toRGBA(color)
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			if !inRoundedRect(x, y, buf.W, buf.H, rad) {
				continue
			}
			// Outside the inner cutout (the buffer inset by width on every
			// side, which is the window's own visible frame) is frame color; inside it is
			// fully transparent so the window itself shows through.
			insideCutout := x >= width && y >= width && x < buf.W-width && y < buf.H-width
			if !insideCutout {
				buf.Set(x, y, col)
			}
		}
	}
	// Render before reposition so a stale bitmap never flashes at the new
	// size — Present uploads pixels and moves the window atomically.
	return b.lw.Present(toWinRect(outer), buf)
}

// Hide makes the border invisible without destroying the window.
func (b *Border) Hide() { b.lw.Hide() }

// Destroy releases the border's OS window.
func (b *Border) Destroy() { b.lw.Destroy() }
