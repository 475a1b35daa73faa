// Package winapi is the thin win32 syscall layer every OS-facing
// component (window adapter, monitor enumerator, event pump, hotkey
// pump, layered overlays, single-instance guard) is built on. No cgo:
// every call goes through golang.org/x/sys/windows' lazy DLL binding.
package winapi

import "golang.org/x/sys/windows"

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")
	modDwmapi   = windows.NewLazySystemDLL("dwmapi.dll")
	modGdi32    = windows.NewLazySystemDLL("gdi32.dll")
	modShcore   = windows.NewLazySystemDLL("shcore.dll")

	procEnumWindows           = modUser32.NewProc("EnumWindows")
	procGetWindowThreadPID    = modUser32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible       = modUser32.NewProc("IsWindowVisible")
	procIsIconic              = modUser32.NewProc("IsIconic")
	procIsZoomed              = modUser32.NewProc("IsZoomed")
	procGetWindow             = modUser32.NewProc("GetWindow")
	procGetWindowTextW        = modUser32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW  = modUser32.NewProc("GetWindowTextLengthW")
	procGetClassNameW         = modUser32.NewProc("GetClassNameW")
	procGetWindowRect         = modUser32.NewProc("GetWindowRect")
	procSetWindowPos          = modUser32.NewProc("SetWindowPos")
	procGetWindowLongPtrW     = modUser32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW     = modUser32.NewProc("SetWindowLongPtrW")
	procSetWinEventHook       = modUser32.NewProc("SetWinEventHook")
	procUnhookWinEvent        = modUser32.NewProc("UnhookWinEvent")
	procGetMessageW           = modUser32.NewProc("GetMessageW")
	procTranslateMessage      = modUser32.NewProc("TranslateMessage")
	procDispatchMessageW      = modUser32.NewProc("DispatchMessageW")
	procPostThreadMessageW    = modUser32.NewProc("PostThreadMessageW")
	procRegisterHotKey        = modUser32.NewProc("RegisterHotKey")
	procUnregisterHotKey      = modUser32.NewProc("UnregisterHotKey")
	procEnumDisplayMonitors   = modUser32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW       = modUser32.NewProc("GetMonitorInfoW")
	procPostMessageW          = modUser32.NewProc("PostMessageW")
	procSetForegroundWindow   = modUser32.NewProc("SetForegroundWindow")
	procRedrawWindow          = modUser32.NewProc("RedrawWindow")
	procRegisterClassExW      = modUser32.NewProc("RegisterClassExW")
	procCreateWindowExW       = modUser32.NewProc("CreateWindowExW")
	procDestroyWindow         = modUser32.NewProc("DestroyWindow")
	procDefWindowProcW        = modUser32.NewProc("DefWindowProcW")
	procUpdateLayeredWindow   = modUser32.NewProc("UpdateLayeredWindow")
	procLoadCursorW           = modUser32.NewProc("LoadCursorW")
	procGetDC                 = modUser32.NewProc("GetDC")
	procReleaseDC             = modUser32.NewProc("ReleaseDC")

	procGetCurrentThreadId      = modKernel32.NewProc("GetCurrentThreadId")
	procCreateMutexW            = modKernel32.NewProc("CreateMutexW")
	procGetLastError            = modKernel32.NewProc("GetLastError")
	procReleaseMutex             = modKernel32.NewProc("ReleaseMutex")
	procOpenProcess              = modKernel32.NewProc("OpenProcess")
	procQueryFullProcessImageNameW = modKernel32.NewProc("QueryFullProcessImageNameW")
	procCloseHandle              = modKernel32.NewProc("CloseHandle")

	procDwmGetWindowAttribute = modDwmapi.NewProc("DwmGetWindowAttribute")
	procDwmSetWindowAttribute = modDwmapi.NewProc("DwmSetWindowAttribute")

	procCreateDIBSection = modGdi32.NewProc("CreateDIBSection")
	procCreateCompatibleDC = modGdi32.NewProc("CreateCompatibleDC")
	procSelectObject     = modGdi32.NewProc("SelectObject")
	procDeleteObject     = modGdi32.NewProc("DeleteObject")
	procDeleteDC         = modGdi32.NewProc("DeleteDC")
	procCreateFontW      = modGdi32.NewProc("CreateFontW")
	procSetTextColor     = modGdi32.NewProc("SetTextColor")
	procSetBkMode        = modGdi32.NewProc("SetBkMode")
	procTextOutW         = modGdi32.NewProc("TextOutW")
	procGetTextExtentPoint32W = modGdi32.NewProc("GetTextExtentPoint32W")

	procSetProcessDpiAwarenessContext = modUser32.NewProc("SetProcessDpiAwarenessContext")
)

// Handle is the exported HWND-as-uint64 type every higher layer works
// with; it mirrors layout.Handle but keeps this package decoupled from
// the layout package.
type Handle uint64

func toHWND(h Handle) windows.HWND { return windows.HWND(h) }
func fromHWND(h windows.HWND) Handle { return Handle(h) }
