package controller

import (
	"github.com/jmelosegui/mosaico/internal/configio"
	"github.com/jmelosegui/mosaico/internal/geom"
	"github.com/jmelosegui/mosaico/internal/layout"
	"github.com/jmelosegui/mosaico/internal/model"
	"github.com/jmelosegui/mosaico/internal/winapi"
)

// WindowAdapter abstracts C6's window operations so the controller can
// be driven by a real win32-backed implementation in production and a
// fake in tests — mirrors the teacher's platform.Backend split between
// interface and concrete OS backend.
type WindowAdapter interface {
	Title(h layout.Handle) string
	Class(h layout.Handle) string
	IsVisible(h layout.Handle) bool
	IsToolWindow(h layout.Handle) bool
	SetRect(h layout.Handle, r geom.Rect) error
	Invalidate(h layout.Handle)
	Hide(h layout.Handle, strategy configio.HideStrategy) error
	Show(h layout.Handle, strategy configio.HideStrategy) error
	SetTopmost(h layout.Handle, on bool) error
	SendClose(h layout.Handle) error
	SetCornerPreference(h layout.Handle, style winapi.CornerStyle)
	SetForeground(h layout.Handle) error
	VisibleFrame(h layout.Handle) (geom.Rect, error)
}

// Win32Adapter is the production WindowAdapter, a thin pass-through to
// internal/winapi.
type Win32Adapter struct{}

func (Win32Adapter) Title(h layout.Handle) string { return winapi.Title(winapi.Handle(h)) }
func (Win32Adapter) Class(h layout.Handle) string { return winapi.Class(winapi.Handle(h)) }
func (Win32Adapter) IsVisible(h layout.Handle) bool { return winapi.IsVisible(winapi.Handle(h)) }
func (Win32Adapter) IsToolWindow(h layout.Handle) bool { return winapi.IsToolWindow(winapi.Handle(h)) }

func (Win32Adapter) SetRect(h layout.Handle, r geom.Rect) error {
	class := winapi.Class(winapi.Handle(h))
	chromium := class == "Chrome_WidgetWin_1" || class == "MozillaWindowClass"
	return winapi.SetRect(winapi.Handle(h), winapi.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}, chromium)
}

func (Win32Adapter) Invalidate(h layout.Handle) { winapi.Invalidate(winapi.Handle(h)) }

func (Win32Adapter) Hide(h layout.Handle, strategy configio.HideStrategy) error {
	switch strategy {
	case configio.HideHide:
		return winapi.Hide(winapi.Handle(h))
	case configio.HideMinimize:
		return winapi.Minimize(winapi.Handle(h))
	default:
		return winapi.Cloak(winapi.Handle(h))
	}
}

func (Win32Adapter) Show(h layout.Handle, strategy configio.HideStrategy) error {
	switch strategy {
	case configio.HideHide:
		return winapi.Show(winapi.Handle(h))
	case configio.HideMinimize:
		return winapi.RestoreWindow(winapi.Handle(h))
	default:
		return winapi.Uncloak(winapi.Handle(h))
	}
}

func (Win32Adapter) SetTopmost(h layout.Handle, on bool) error {
	return winapi.SetTopmost(winapi.Handle(h), on)
}
func (Win32Adapter) SendClose(h layout.Handle) error { return winapi.SendClose(winapi.Handle(h)) }
func (Win32Adapter) SetCornerPreference(h layout.Handle, style winapi.CornerStyle) {
	winapi.SetCornerPreference(winapi.Handle(h), style)
}
func (Win32Adapter) SetForeground(h layout.Handle) error { return winapi.SetForeground(winapi.Handle(h)) }

func (Win32Adapter) VisibleFrame(h layout.Handle) (geom.Rect, error) {
	r, err := winapi.VisibleFrame(winapi.Handle(h))
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}, nil
}

// MonitorEnumerator abstracts C7.
type MonitorEnumerator interface {
	Enumerate() ([]model.Monitor, error)
}

// Win32Monitors is the production MonitorEnumerator.
type Win32Monitors struct{}

func (Win32Monitors) Enumerate() ([]model.Monitor, error) {
	infos, err := winapi.EnumerateMonitors()
	if err != nil {
		return nil, err
	}
	out := make([]model.Monitor, len(infos))
	for i, m := range infos {
		r := geom.Rect{X: m.RawWorkArea.X, Y: m.RawWorkArea.Y, W: m.RawWorkArea.W, H: m.RawWorkArea.H}
		out[i] = model.Monitor{ID: m.ID, RawWorkArea: r, EffectiveWorkArea: r}
	}
	return out, nil
}
