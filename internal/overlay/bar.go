package overlay

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	nf "github.com/lrstanley/go-nf"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/theme"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// MediaProvider supplies the now-playing title/artist the "media" widget
// shows. No OS media-session binding exists in the pack this is grounded
// on, so production wiring defaults to NoopMediaProvider — the widget
// contract (invisible when both are empty) still holds.
type MediaProvider interface {
	NowPlaying() (title, artist string)
}

// NoopMediaProvider always reports nothing playing.
type NoopMediaProvider struct{}

func (NoopMediaProvider) NowPlaying() (string, string) { return "", "" }

// UpdateChecker reports the latest known release tag, empty when none is
// newer than the running binary — the actual network fetch is an external
// collaborator per spec.md's self-update non-goal; this only compares.
type UpdateChecker struct {
	CurrentVersion string
	LatestKnownTag string
}

// Newer returns the latest tag string when it out-versions the running
// build, per the "update" widget's "non-empty when a newer release tag is
// known" contract.
func (u UpdateChecker) Newer() string {
	if u.LatestKnownTag == "" {
		return ""
	}
	cur, err := semver.NewVersion(u.CurrentVersion)
	if err != nil {
		return ""
	}
	latest, err := semver.NewVersion(u.LatestKnownTag)
	if err != nil {
		return ""
	}
	if latest.GreaterThan(cur) {
		return u.LatestKnownTag
	}
	return ""
}

// WorkspaceState describes one workspace pill.
type WorkspaceState struct {
	Index    int
	Occupied bool
	Active   bool
}

// RenderState is everything one Bar.Render pass needs; the controller (or
// daemon loop) assembles it once per 1Hz tick / relevant event.
type RenderState struct {
	Now            time.Time
	ClockFormat    string
	DateFormat     string
	Workspaces     []WorkspaceState
	LayoutName     string
	MonocleOn      bool
	FocusedClass   string
	FocusedTitle   string
	Media          MediaProvider
	Update         UpdateChecker
	sampledCPU     float64
	sampledRAM     float64
}

const barClassPrefix = "MosaicoBar-"

// Bar is one per-monitor status strip (C13).
type Bar struct {
	lw      *winapi.LayeredWindow
	monitor string
}

// NewBar creates the (initially hidden) layered window for one monitor.
func NewBar(monitorID string) (*Bar, error) {
	lw, err := winapi.CreateLayeredWindow(barClassPrefix+monitorID, winapi.Rect{W: 1, H: 1}, false)
	if err != nil {
		return nil, err
	}
	return &Bar{lw: lw, monitor: monitorID}, nil
}

// Sample returns the current CPU/RAM widget values. Gopsutil's
// cpu.Percent blocks for the sampling interval, so the caller should
// invoke this off the controller's goroutine and pass the result in.
func Sample(ctx context.Context) (cpuPct, ramPct float64) {
	if pcts, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(pcts) > 0 {
		cpuPct = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		ramPct = vm.UsedPercent
	}
	return
}

// Render composes the bar buffer for one monitor's work-area width and
// configured height, draws widgets per cfg's left/center/right lists, and
// presents it.
func (b *Bar) Render(topLeft geom.Rect, cfg *configio.BarConfig, flavor theme.Flavor, state RenderState, cpuPct, ramPct float64) error {
	if cfg == nil || !cfg.Enabled {
		b.lw.Hide()
		return nil
	}
	state.sampledCPU = cpuPct
	state.sampledRAM = ramPct

	buf := winapi.NewBuffer(topLeft.W, cfg.Height)
	bg, err := theme.Resolve(flavor, cfg.Colors.Background, flavor.BarBackground())
	if err != nil {
		bg = flavor.BarBackground()
	}
	fg, err := theme.Resolve(flavor, cfg.Colors.Foreground, flavor.BarForeground())
	if err != nil {
		fg = flavor.BarForeground()
	}
	active, err := theme.Resolve(flavor, cfg.Colors.Active, flavor.WorkspaceActive())
	if err != nil {
		active = flavor.WorkspaceActive()
	}
	buf.Fill(toRGBA(bg))

	const gap = 8
	renderWidgets(buf, cfg.Left, state, fg, active, gap, gap, false)
	renderWidgets(buf, cfg.Right, state, fg, active, gap, buf.W-gap, true)
	if len(cfg.Center) > 0 {
		renderWidgets(buf, cfg.Center, state, fg, active, gap, buf.W/2, false)
	}

	r := geom.Rect{X: topLeft.X, Y: topLeft.Y, W: buf.W, H: buf.H}
	return b.lw.PresentWithDraw(toWinRect(r), buf, func(hdc uintptr) {
		drawWidgetText(hdc, cfg.Left, state, fg, gap, false)
		drawWidgetText(hdc, cfg.Right, state, fg, buf.W-gap, true)
		if len(cfg.Center) > 0 {
			drawWidgetText(hdc, cfg.Center, state, fg, buf.W/2, false)
		}
	})
}

// Hide makes the bar invisible without destroying the window.
func (b *Bar) Hide() { b.lw.Hide() }

// Destroy releases the bar's OS window.
func (b *Bar) Destroy() { b.lw.Destroy() }

const widgetFontSize = 11

// widgetText resolves a widget spec plus state into its display string,
// per spec.md's contract table; an empty return hides the widget's pill
// entirely.
func widgetText(spec configio.WidgetSpec, s RenderState) string {
	switch spec.Type {
	case "workspaces":
		out := ""
		for _, ws := range s.Workspaces {
			if !ws.Occupied {
				continue
			}
			if ws.Active {
				out += fmt.Sprintf("[%d]", ws.Index+1)
			} else {
				out += fmt.Sprintf(" %d ", ws.Index+1)
			}
		}
		return out
	case "layout":
		if s.MonocleOn {
			return s.LayoutName + "+M"
		}
		return s.LayoutName
	case "clock":
		format := spec.Options["format"]
		if format == "" {
			format = "15:04"
		}
		return s.Now.Format(format)
	case "date":
		format := spec.Options["format"]
		if format == "" {
			format = "2006-01-02"
		}
		return s.Now.Format(format)
	case "cpu":
		return fmt.Sprintf("CPU %.0f%%", s.sampledCPU)
	case "ram":
		return fmt.Sprintf("RAM %.0f%%", s.sampledRAM)
	case "active_window":
		return iconGlyph(s.FocusedClass) + " " + s.FocusedTitle
	case "media":
		title, artist := "", ""
		if s.Media != nil {
			title, artist = s.Media.NowPlaying()
		}
		if title == "" && artist == "" {
			return ""
		}
		return title + " — " + artist
	case "update":
		return s.Update.Newer()
	}
	return ""
}

// renderWidgets fills each widget's pill background; returns the
// horizontal extent consumed so callers tracking layout cursors can use
// it (presently informational only — text is drawn in a second GDI pass
// in drawWidgetText since pill sizing depends on measured text width).
func renderWidgets(buf *winapi.Buffer, specs []configio.WidgetSpec, s RenderState, fg, active theme.RGBA, gap, cursor int, rightToLeft bool) int {
	for _, spec := range specs {
		text := widgetText(spec, s)
		if text == "" {
			continue
		}
		w, h := winapi.MeasureText(text, widgetFontSize)
		pillW, pillH := w+16, h+6
		y := (buf.H - pillH) / 2
		var x int
		if rightToLeft {
			x = cursor - pillW
			cursor = x - gap
		} else {
			x = cursor
			cursor = x + pillW + gap
		}
		pill := winapi.NewBuffer(pillW, pillH)
		col := active
		if spec.Type != "workspaces" {
			col = fg
		}
		fillRoundedRect(pill, pillH/2, dimmed(col))
		blitInto(buf, pill, x, y)
	}
	return cursor
}

// drawWidgetText re-walks the same widget list computing identical
// cursor math to lay GDI TextOut calls exactly on top of the pill
// backgrounds renderWidgets already painted.
func drawWidgetText(hdc uintptr, specs []configio.WidgetSpec, s RenderState, fg theme.RGBA, cursor int, rightToLeft bool) {
	const gap = 8
	for _, spec := range specs {
		text := widgetText(spec, s)
		if text == "" {
			continue
		}
		w, _ := winapi.MeasureText(text, widgetFontSize)
		pillW := w + 16
		var x int
		if rightToLeft {
			x = cursor - pillW
			cursor = x - gap
		} else {
			x = cursor
			cursor = x + pillW + gap
		}
		winapi.DrawText(hdc, text, x+8, 4, widgetFontSize, toRGBA(fg))
	}
}

// dimmed halves a color's alpha so widget pills read as a translucent
// layer over the bar background rather than a fully opaque block.
func dimmed(c theme.RGBA) winapi.BGRA {
	return winapi.BGRA{B: c.B, G: c.G, R: c.R, A: c.A / 2}
}

// blitInto copies src's non-transparent pixels onto dst at (x0, y0).
func blitInto(dst, src *winapi.Buffer, x0, y0 int) {
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			c := src.Pixels[y*src.W+x]
			if c.A == 0 {
				continue
			}
			dst.Set(x0+x, y0+y, c)
		}
	}
}

// iconGlyph looks up a nerd-font glyph for a window class, falling back
// to a generic application glyph — the non-bitmap substitute for icon
// extraction spec.md marks out of scope.
func iconGlyph(class string) string {
	if g, ok := nf.Icons[class]; ok {
		return g
	}
	return nf.Icons["md-application"]
}
