package winapi

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// BGRA is one pixel of an off-screen compositing buffer: blue, green,
// red, alpha — the order UpdateLayeredWindow expects from a 32bpp
// top-down DIB section.
type BGRA struct {
	B, G, R, A byte
}

// Buffer is an off-screen rasterization target for a layered window.
type Buffer struct {
	W, H   int
	Pixels []BGRA
}

// NewBuffer allocates a buffer fully transparent.
func NewBuffer(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{W: w, H: h, Pixels: make([]BGRA, w*h)}
}

// Set writes a pixel, no-op out of bounds.
func (b *Buffer) Set(x, y int, c BGRA) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.Pixels[y*b.W+x] = c
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c BGRA) {
	for i := range b.Pixels {
		b.Pixels[i] = c
	}
}

type bitmapInfoHeader struct {
	size          uint32
	width         int32
	height        int32
	planes        uint16
	bitCount      uint16
	compression   uint32
	sizeImage     uint32
	xPelsPerMeter int32
	yPelsPerMeter int32
	clrUsed       uint32
	clrImportant  uint32
}

type bitmapInfo struct {
	header bitmapInfoHeader
	colors [1]uint32
}

type point struct{ x, y int32 }
type size struct{ cx, cy int32 }
type blendFunction struct {
	blendOp             byte
	blendFlags          byte
	sourceConstantAlpha byte
	alphaFormat         byte
}

const (
	acSrcOver  = 0
	acSrcAlpha = 1
	ulwAlpha   = 2
)

// LayeredWindow owns one always-on-top, click-through, tool-window-style
// WS_EX_LAYERED window and presents Buffer frames to it via
// UpdateLayeredWindow. It is the shared primitive C12 (border) and C13
// (bar) both build on.
type LayeredWindow struct {
	hwnd      windows.HWND
	className string
}

var (
	overlayClassMu       sync.Mutex
	overlayClassRegistry = map[string]bool{}
	overlayWndProcCB     uintptr
)

// CreateLayeredWindow registers (once per class name) and creates a
// popup layered window sized to r, always-on-top, not activatable, and
// click-through when clickThrough is set.
func CreateLayeredWindow(className string, r Rect, clickThrough bool) (*LayeredWindow, error) {
	overlayClassMu.Lock()
	if overlayWndProcCB == 0 {
		overlayWndProcCB = syscall.NewCallback(overlayWndProc)
	}
	if !overlayClassRegistry[className] {
		classNamePtr, _ := windows.UTF16PtrFromString(className)
		var wc struct {
			cbSize        uint32
			style         uint32
			lpfnWndProc   uintptr
			cbClsExtra    int32
			cbWndExtra    int32
			hInstance     uintptr
			hIcon         uintptr
			hCursor       uintptr
			hbrBackground uintptr
			lpszMenuName  *uint16
			lpszClassName *uint16
			hIconSm       uintptr
		}
		wc.cbSize = uint32(unsafe.Sizeof(wc))
		wc.lpfnWndProc = overlayWndProcCB
		wc.lpszClassName = classNamePtr
		atom, _, errno := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 {
			overlayClassMu.Unlock()
			return nil, fmt.Errorf("RegisterClassExW(%s): %w", className, errno)
		}
		overlayClassRegistry[className] = true
	}
	overlayClassMu.Unlock()

	const wsPopup = 0x80000000
	exStyle := uintptr(wsExLayered | wsExToolWindow | wsExNoActivate | wsExTopMost)
	if clickThrough {
		exStyle |= wsExTransparent
	}
	classNamePtr, _ := windows.UTF16PtrFromString(className)
	hwnd, _, errno := procCreateWindowExW.Call(
		exStyle, uintptr(unsafe.Pointer(classNamePtr)), 0, wsPopup,
		uintptr(int32(r.X)), uintptr(int32(r.Y)), uintptr(int32(r.W)), uintptr(int32(r.H)),
		0, 0, 0, 0)
	if hwnd == 0 {
		return nil, fmt.Errorf("CreateWindowExW(%s): %w", className, errno)
	}
	return &LayeredWindow{hwnd: windows.HWND(hwnd), className: className}, nil
}

func overlayWndProc(hwnd windows.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

// Present rasterizes buf into a DIB section and atomically updates the
// layered window with per-pixel alpha, positioning it at r.
func (w *LayeredWindow) Present(r Rect, buf *Buffer) error {
	return w.PresentWithDraw(r, buf, nil)
}

// PresentWithDraw behaves like Present but invokes draw with the memory
// DC after buf's pixels are copied into the DIB section and before the
// window is updated — the bar overlay uses this to layer GDI text on top
// of its pre-rasterized pill backgrounds.
func (w *LayeredWindow) PresentWithDraw(r Rect, buf *Buffer, draw func(hdc uintptr)) error {
	hdcScreen, _, _ := procGetDC.Call(0)
	defer procReleaseDC.Call(0, hdcScreen)

	hdcMem, _, _ := procCreateCompatibleDC.Call(hdcScreen)
	defer procDeleteDC.Call(hdcMem)

	bi := bitmapInfo{header: bitmapInfoHeader{
		size: uint32(unsafe.Sizeof(bitmapInfoHeader{})), width: int32(buf.W),
		height: -int32(buf.H), planes: 1, bitCount: 32, compression: 0,
	}}
	var bitsPtr uintptr
	hBmp, _, errno := procCreateDIBSection.Call(hdcMem, uintptr(unsafe.Pointer(&bi)), 0, uintptr(unsafe.Pointer(&bitsPtr)), 0, 0)
	if hBmp == 0 {
		return fmt.Errorf("CreateDIBSection: %w", errno)
	}
	defer procDeleteObject.Call(hBmp)

	oldBmp, _, _ := procSelectObject.Call(hdcMem, hBmp)
	defer procSelectObject.Call(hdcMem, oldBmp)

	dst := unsafe.Slice((*BGRA)(unsafe.Pointer(bitsPtr)), buf.W*buf.H)
	copy(dst, buf.Pixels)

	if draw != nil {
		draw(hdcMem)
	}

	ptDst := point{int32(r.X), int32(r.Y)}
	sz := size{int32(buf.W), int32(buf.H)}
	ptSrc := point{0, 0}
	blend := blendFunction{blendOp: acSrcOver, sourceConstantAlpha: 255, alphaFormat: acSrcAlpha}

	ok, _, errno := procUpdateLayeredWindow.Call(
		uintptr(w.hwnd), hdcMem,
		uintptr(unsafe.Pointer(&ptDst)), uintptr(unsafe.Pointer(&sz)),
		uintptr(unsafe.Pointer(&ptSrc)), 0,
		uintptr(unsafe.Pointer(&blend)), ulwAlpha)
	if ok == 0 {
		return fmt.Errorf("UpdateLayeredWindow: %w", errno)
	}
	return nil
}

// Hide makes the overlay invisible (used for border width 0 / bar
// disabled) without destroying the window.
func (w *LayeredWindow) Hide() {
	procShowWindow.Call(uintptr(w.hwnd), swHide)
}

// Destroy releases the overlay window. Call on daemon shutdown.
func (w *LayeredWindow) Destroy() {
	procDestroyWindow.Call(uintptr(w.hwnd))
}
