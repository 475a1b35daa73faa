package winapi

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// win32Rect mirrors the win32 RECT layout for direct syscall marshaling.
type win32Rect struct {
	Left, Top, Right, Bottom int32
}

// Rect is the public outward-facing rectangle shape for this package's
// read operations, in the same virtual-screen pixel space as geom.Rect.
type Rect struct {
	X, Y, W, H int
}

// BorderOffset is the per-side difference between a window's outer
// bounding box and its visible frame.
type BorderOffset struct {
	L, T, R, B int
}

const (
	swpNoActivate     = 0x0010
	swpNoZOrder       = 0x0004
	swpNoSendChanging = 0x0400
	swpFrameChanged   = 0x0020
	swpNoMove         = 0x0002
	swpNoSize         = 0x0001

	gwlExStyle = -20

	wsExToolWindow  = 0x00000080
	wsExAppWindow   = 0x00040000
	wsExNoActivate  = 0x08000000
	wsExTopMost     = 0x00000008
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020

	dwmwaExtendedFrameBounds = 9
	dwmwaWindowCornerPref    = 33
	dwmwaCloak               = 13

	dwmwcpDefault  = 0
	dwmwcpDoNotRound = 1
	dwmwcpRound      = 2
	dwmwcpRoundSmall = 3

	hwndTop       = 0
	hwndTopMost   = ^uintptr(0) // -1
	hwndNoTopMost = ^uintptr(1) // -2

	gwOwner = 4
)

// CornerStyle matches the spec's square/small/round border config.
type CornerStyle int

const (
	CornerSquare CornerStyle = iota
	CornerSmall
	CornerRound
)

func dwmCornerPreference(style CornerStyle) uintptr {
	switch style {
	case CornerSmall:
		return dwmwcpRoundSmall
	case CornerRound:
		return dwmwcpRound
	default:
		return dwmwcpDoNotRound
	}
}

// WindowError reports a failed win32 call for one window; the caller is
// expected to log and continue, never propagate past the controller.
type WindowError struct {
	Op  string
	Err error
}

func (e *WindowError) Error() string { return fmt.Sprintf("winapi: %s: %v", e.Op, e.Err) }
func (e *WindowError) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil || err == windows.ERROR_SUCCESS {
		return nil
	}
	return &WindowError{Op: op, Err: err}
}

// Title returns the window's caption text.
func Title(h Handle) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(toHWND(h)))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(toHWND(h)), uintptr(unsafe.Pointer(&buf[0])), n+1)
	return windows.UTF16ToString(buf)
}

// Class returns the window class name.
func Class(h Handle) string {
	buf := make([]uint16, 256)
	n, _, _ := procGetClassNameW.Call(uintptr(toHWND(h)), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// OuterRect reads the OS-reported outer bounding box.
func OuterRect(h Handle) (Rect, error) {
	var r win32Rect
	ok, _, errno := procGetWindowRect.Call(uintptr(toHWND(h)), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return Rect{}, wrapErr("GetWindowRect", errno)
	}
	return Rect{X: int(r.Left), Y: int(r.Top), W: int(r.Right - r.Left), H: int(r.Bottom - r.Top)}, nil
}

// extendedFrameBounds reads DWMWA_EXTENDED_FRAME_BOUNDS — the visible
// frame, excluding the invisible resize border many apps draw.
func extendedFrameBounds(h Handle) (Rect, error) {
	var r win32Rect
	hr, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(toHWND(h)), dwmwaExtendedFrameBounds,
		uintptr(unsafe.Pointer(&r)), unsafe.Sizeof(r))
	if hr != 0 {
		return Rect{}, wrapErr("DwmGetWindowAttribute", syscall.Errno(hr))
	}
	return Rect{X: int(r.Left), Y: int(r.Top), W: int(r.Right - r.Left), H: int(r.Bottom - r.Top)}, nil
}

// VisibleFrame exposes extendedFrameBounds for callers outside this
// package — the border overlay wraps this rect, not the outer one, since
// most apps draw several pixels of invisible resize border past it.
func VisibleFrame(h Handle) (Rect, error) {
	return extendedFrameBounds(h)
}

// BorderOffsetOf computes the compensation between the outer rect and
// the DWM-reported visible frame.
func BorderOffsetOf(h Handle) (BorderOffset, error) {
	outer, err := OuterRect(h)
	if err != nil {
		return BorderOffset{}, err
	}
	frame, err := extendedFrameBounds(h)
	if err != nil {
		return BorderOffset{}, err
	}
	return BorderOffset{
		L: frame.X - outer.X,
		T: frame.Y - outer.Y,
		R: (outer.X + outer.W) - (frame.X + frame.W),
		B: (outer.Y + outer.H) - (frame.Y + frame.H),
	}, nil
}

// IsVisible wraps IsWindowVisible.
func IsVisible(h Handle) bool {
	ok, _, _ := procIsWindowVisible.Call(uintptr(toHWND(h)))
	return ok != 0
}

// IsMinimized wraps IsIconic.
func IsMinimized(h Handle) bool {
	ok, _, _ := procIsIconic.Call(uintptr(toHWND(h)))
	return ok != 0
}

// IsMaximized wraps IsZoomed.
func IsMaximized(h Handle) bool {
	ok, _, _ := procIsZoomed.Call(uintptr(toHWND(h)))
	return ok != 0
}

func exStyle(h Handle) uintptr {
	s, _, _ := procGetWindowLongPtrW.Call(uintptr(toHWND(h)), uintptr(gwlExStyle))
	return s
}

// IsToolWindow reports WS_EX_TOOLWINDOW, used by the tileability filter.
func IsToolWindow(h Handle) bool {
	return exStyle(h)&wsExToolWindow != 0
}

// HasOwner reports whether the window has an owner (GW_OWNER), used to
// exclude owned popups from the tileable set.
func HasOwner(h Handle) bool {
	owner, _, _ := procGetWindow.Call(uintptr(toHWND(h)), gwOwner)
	return owner != 0
}

// SetRect moves and resizes h to the given visible-frame rectangle,
// compensating with the border offset so the visible frame lands exactly
// where the caller specified. Z-order is preserved, activation is
// suppressed, and position-changing notifications are suppressed so the
// app cannot reject the move.
func SetRect(h Handle, r Rect, chromiumClassHint bool) error {
	off, err := BorderOffsetOf(h)
	if err != nil {
		off = BorderOffset{}
	}
	x := r.X - off.L
	y := r.Y - off.T
	w := r.W + off.L + off.R
	ht := r.H + off.T + off.B

	flags := uintptr(swpNoZOrder | swpNoActivate | swpNoSendChanging)
	if chromiumClassHint {
		flags |= swpFrameChanged
	}
	ok, _, errno := procSetWindowPos.Call(
		uintptr(toHWND(h)), 0, uintptr(int32(x)), uintptr(int32(y)),
		uintptr(int32(w)), uintptr(int32(ht)), flags)
	if ok == 0 {
		return wrapErr("SetWindowPos", errno)
	}
	return nil
}

// Invalidate forces a full redraw including children, needed for
// GPU-composited applications that do not repaint on a plain move.
func Invalidate(h Handle) {
	const rdwAllChildren = 0x0080
	const rdwInvalidate = 0x0001
	const rdwErase = 0x0004
	const rdwUpdateNow = 0x0100
	procRedrawWindow.Call(uintptr(toHWND(h)), 0, 0, rdwInvalidate|rdwErase|rdwAllChildren|rdwUpdateNow)
}

// SetTopmost adds or removes the always-on-top flag, used for floating
// windows.
func SetTopmost(h Handle, topmost bool) error {
	insertAfter := uintptr(hwndNoTopMost)
	if topmost {
		insertAfter = uintptr(hwndTopMost)
	}
	ok, _, errno := procSetWindowPos.Call(uintptr(toHWND(h)), insertAfter, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate)
	if ok == 0 {
		return wrapErr("SetWindowPos(topmost)", errno)
	}
	return nil
}

// SendClose posts a non-forced WM_CLOSE.
func SendClose(h Handle) error {
	const wmClose = 0x0010
	ok, _, errno := procPostMessageW.Call(uintptr(toHWND(h)), wmClose, 0, 0)
	if ok == 0 {
		return wrapErr("PostMessage(WM_CLOSE)", errno)
	}
	return nil
}

// SetForeground activates the window.
func SetForeground(h Handle) error {
	ok, _, errno := procSetForegroundWindow.Call(uintptr(toHWND(h)))
	if ok == 0 {
		return wrapErr("SetForegroundWindow", errno)
	}
	return nil
}

// SetCornerPreference applies the DWM corner-rounding attribute, a
// silent no-op on OS versions that do not support it.
func SetCornerPreference(h Handle, style CornerStyle) {
	pref := dwmCornerPreference(style)
	procDwmSetWindowAttribute.Call(uintptr(toHWND(h)), dwmwaWindowCornerPref,
		uintptr(unsafe.Pointer(&pref)), unsafe.Sizeof(pref))
}

// Cloak/Uncloak use the immersive-shell cloak attribute: the same
// mechanism virtual desktops use. A cloaked window stays enumerable and
// keeps its taskbar entry, and crucially emits no hide events — the
// reason it is the default workspace-hide strategy.
func Cloak(h Handle) error {
	v := uintptr(1)
	hr, _, _ := procDwmSetWindowAttribute.Call(uintptr(toHWND(h)), dwmwaCloak, uintptr(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	if hr != 0 {
		return wrapErr("DwmSetWindowAttribute(cloak)", syscall.Errno(hr))
	}
	return nil
}

func Uncloak(h Handle) error {
	v := uintptr(0)
	hr, _, _ := procDwmSetWindowAttribute.Call(uintptr(toHWND(h)), dwmwaCloak, uintptr(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	if hr != 0 {
		return wrapErr("DwmSetWindowAttribute(uncloak)", syscall.Errno(hr))
	}
	return nil
}

const (
	swHide        = 0
	swShowNA      = 8
	swMinimize    = 6
	swRestore     = 9
)

var procShowWindow = modUser32.NewProc("ShowWindow")

// Hide/Show/Minimize/RestoreWindow realize the configured
// workspace-hide strategy when it is not cloak.
func Hide(h Handle) error {
	ok, _, errno := procShowWindow.Call(uintptr(toHWND(h)), swHide)
	if ok == 0 {
		return wrapErr("ShowWindow(hide)", errno)
	}
	return nil
}

func Show(h Handle) error {
	ok, _, errno := procShowWindow.Call(uintptr(toHWND(h)), swShowNA)
	if ok == 0 {
		return wrapErr("ShowWindow(show)", errno)
	}
	return nil
}

func Minimize(h Handle) error {
	ok, _, errno := procShowWindow.Call(uintptr(toHWND(h)), swMinimize)
	if ok == 0 {
		return wrapErr("ShowWindow(minimize)", errno)
	}
	return nil
}

func RestoreWindow(h Handle) error {
	ok, _, errno := procShowWindow.Call(uintptr(toHWND(h)), swRestore)
	if ok == 0 {
		return wrapErr("ShowWindow(restore)", errno)
	}
	return nil
}
