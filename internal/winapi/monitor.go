package winapi

import (
	"sort"
	"sync"
	"syscall"
	"unsafe"
)

func newMonitorEnumCallback() uintptr {
	return syscall.NewCallback(monitorEnumProc)
}

// MonitorInfo is one enumerated OS display.
type MonitorInfo struct {
	ID          string
	RawWorkArea Rect
}

type monitorInfoExW struct {
	cbSize    uint32
	rcMonitor win32Rect
	rcWork    win32Rect
	dwFlags   uint32
	szDevice  [32]uint16
}

var (
	enumMonitorsMu  sync.Mutex
	enumMonitorsOut []MonitorInfo
	enumMonitorsCB  uintptr
)

// EnumerateMonitors lists every display, sorted ascending by work-area
// center-x as the spec requires.
func EnumerateMonitors() ([]MonitorInfo, error) {
	enumMonitorsMu.Lock()
	defer enumMonitorsMu.Unlock()

	enumMonitorsOut = nil
	if enumMonitorsCB == 0 {
		enumMonitorsCB = newMonitorEnumCallback()
	}
	procEnumDisplayMonitors.Call(0, 0, enumMonitorsCB, 0)

	out := enumMonitorsOut
	enumMonitorsOut = nil

	sort.Slice(out, func(i, j int) bool {
		ci := out[i].RawWorkArea.X + out[i].RawWorkArea.W/2
		cj := out[j].RawWorkArea.X + out[j].RawWorkArea.W/2
		return ci < cj
	})
	return out, nil
}

func monitorEnumProc(hMonitor uintptr, _ uintptr, _ uintptr, _ uintptr) uintptr {
	var mi monitorInfoExW
	mi.cbSize = uint32(unsafe.Sizeof(mi))
	ok, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ok != 0 {
		enumMonitorsOut = append(enumMonitorsOut, MonitorInfo{
			ID: monitorIDFromDevice(mi.szDevice[:]),
			RawWorkArea: Rect{
				X: int(mi.rcWork.Left), Y: int(mi.rcWork.Top),
				W: int(mi.rcWork.Right - mi.rcWork.Left),
				H: int(mi.rcWork.Bottom - mi.rcWork.Top),
			},
		})
	}
	return 1 // continue enumeration
}

func monitorIDFromDevice(u16 []uint16) string {
	n := 0
	for n < len(u16) && u16[n] != 0 {
		n++
	}
	return string(utf16Decode(u16[:n]))
}

func utf16Decode(u16 []uint16) []rune {
	out := make([]rune, 0, len(u16))
	for _, c := range u16 {
		out = append(out, rune(c))
	}
	return out
}
