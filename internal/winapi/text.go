package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	bkModeTransparent = 1
	fwNormal          = 400
	defaultCharset    = 1
	outDefaultPrecis  = 0
	clipDefaultPrecis = 0
	defaultQuality    = 0
	defaultPitch      = 0
)

// MeasureText returns the pixel width/height TextOut would occupy for s
// rendered at pointSize in the default UI font, using a throwaway
// compatible DC — used by bar widgets to size their pill background
// before the real composite pass.
func MeasureText(s string, pointSize int) (w, h int) {
	hdcScreen, _, _ := procGetDC.Call(0)
	defer procReleaseDC.Call(0, hdcScreen)
	hdcMem, _, _ := procCreateCompatibleDC.Call(hdcScreen)
	defer procDeleteDC.Call(hdcMem)

	font := createFont(pointSize)
	old, _, _ := procSelectObject.Call(hdcMem, font)
	defer procSelectObject.Call(hdcMem, old)
	defer procDeleteObject.Call(font)

	utf16, _ := windows.UTF16PtrFromString(s)
	var size struct{ cx, cy int32 }
	procGetTextExtentPoint32W.Call(hdcMem, uintptr(unsafe.Pointer(utf16)), uintptr(len([]rune(s))), uintptr(unsafe.Pointer(&size)))
	return int(size.cx), int(size.cy)
}

func createFont(pointSize int) uintptr {
	heightPx := -int32(pointSize * 96 / 72) // 96 DPI logical pixels; no per-monitor scaling is applied.
	faceName, _ := windows.UTF16FromString("Segoe UI")
	var lf struct {
		height, width, escapement, orientation, weight int32
		italic, underline, strikeOut, charSet           byte
		outPrecision, clipPrecision, quality, pitchAndFamily byte
		faceName [32]uint16
	}
	lf.height = heightPx
	lf.weight = fwNormal
	lf.charSet = defaultCharset
	lf.outPrecision = outDefaultPrecis
	lf.clipPrecision = clipDefaultPrecis
	lf.quality = defaultQuality
	lf.pitchAndFamily = defaultPitch
	copy(lf.faceName[:], faceName)
	h, _, _ := procCreateFontW.Call(uintptr(unsafe.Pointer(&lf)))
	return h
}

// DrawText paints s at (x, y) in color onto hdc with a transparent
// background, leaving the DIB's alpha channel at whatever the caller
// already filled there (GDI's TextOut never touches the reserved byte of
// a 32bpp DIB section's BGRA quad).
func DrawText(hdc uintptr, s string, x, y, pointSize int, color BGRA) {
	font := createFont(pointSize)
	old, _, _ := procSelectObject.Call(hdc, font)
	defer procSelectObject.Call(hdc, old)
	defer procDeleteObject.Call(font)

	colorRef := uintptr(color.R) | uintptr(color.G)<<8 | uintptr(color.B)<<16
	procSetTextColor.Call(hdc, colorRef)
	procSetBkMode.Call(hdc, bkModeTransparent)

	utf16, _ := windows.UTF16PtrFromString(s)
	procTextOutW.Call(hdc, uintptr(int32(x)), uintptr(int32(y)), uintptr(unsafe.Pointer(utf16)), uintptr(len([]rune(s))))
}
