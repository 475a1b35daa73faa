package winapi

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const errorAlreadyExists = 183

// SingleInstanceGuard wraps a system-wide named mutex acquired for the
// lifetime of the daemon process.
type SingleInstanceGuard struct {
	handle windows.Handle
}

// AcquireSingleInstance creates (or opens) the named mutex "name". It
// returns an error when another process already holds it.
func AcquireSingleInstance(name string) (*SingleInstanceGuard, error) {
	namePtr, err := windows.UTF16PtrFromString(`Global\` + name)
	if err != nil {
		return nil, err
	}
	h, _, errno := procCreateMutexW.Call(0, 1, uintptr(unsafe.Pointer(namePtr)))
	if h == 0 {
		return nil, fmt.Errorf("CreateMutexW: %w", errno)
	}
	if errno == syscall.Errno(errorAlreadyExists) {
		procCloseHandle.Call(h)
		return nil, fmt.Errorf("another mosaico daemon is already running")
	}
	return &SingleInstanceGuard{handle: windows.Handle(h)}, nil
}

// Release closes the mutex handle, ending this process's ownership.
func (g *SingleInstanceGuard) Release() {
	if g == nil || g.handle == 0 {
		return
	}
	procReleaseMutex.Call(uintptr(g.handle))
	procCloseHandle.Call(uintptr(g.handle))
}

// EnablePerMonitorDPIAwareness opts the process into per-monitor DPI
// awareness V2, required for pixel-accurate tiling across monitors with
// different scale factors.
func EnablePerMonitorDPIAwareness() {
	const dpiAwarenessContextPerMonitorAwareV2 = ^uintptr(3) // -4, per win32 DPI_AWARENESS_CONTEXT sentinel
	procSetProcessDpiAwarenessContext.Call(dpiAwarenessContextPerMonitorAwareV2)
}
