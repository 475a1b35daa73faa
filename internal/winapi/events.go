package winapi

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// WindowEventKind mirrors model.WindowEventKind without importing the
// model package, keeping this OS layer dependency-free in that
// direction.
type WindowEventKind int

const (
	EvCreated WindowEventKind = iota
	EvDestroyed
	EvFocused
	EvMoved
	EvMinimized
	EvRestored
	EvTitleChanged
)

// RawWindowEvent is what the translator hands the bridge goroutine.
type RawWindowEvent struct {
	Kind   WindowEventKind
	Handle Handle
}

const (
	eventObjectShow        = 0x8002
	eventObjectHide        = 0x8003
	eventSystemForeground  = 0x0003
	eventSystemMoveSizeEnd = 0x000B
	eventSystemMinimizeStart = 0x0016
	eventSystemMinimizeEnd   = 0x0017
	eventObjectNameChange    = 0x800C
	eventMin                 = 0x00000001
	eventMax                 = 0x7FFFFFFF

	winEventOutOfContext = 0x0000
	winEventSkipOwnProcess = 0x0002

	objidWindow = 0
)

// translate maps a raw WinEvent code + object id to the abstract
// WindowEvent set. Both Show and Create map to Created; both Hide and
// Destroy map to Destroyed; EVENT_SYSTEM_MOVESIZEEND maps to Moved —
// it fires once when a move/resize operation finishes, never per frame,
// unlike EVENT_OBJECT_LOCATIONCHANGE which fires continuously during the
// drag and must not be used here; anything unrecognized yields ok=false.
func translate(event uint32, idObject int32) (WindowEventKind, bool) {
	const eventObjectCreate = 0x8000
	const eventObjectDestroy = 0x8001
	if idObject != objidWindow {
		return 0, false
	}
	switch event {
	case eventObjectShow, eventObjectCreate:
		return EvCreated, true
	case eventObjectHide, eventObjectDestroy:
		return EvDestroyed, true
	case eventSystemForeground:
		return EvFocused, true
	case eventSystemMoveSizeEnd:
		return EvMoved, true
	case eventSystemMinimizeStart:
		return EvMinimized, true
	case eventSystemMinimizeEnd:
		return EvRestored, true
	case eventObjectNameChange:
		return EvTitleChanged, true
	default:
		return 0, false
	}
}

// EventPump runs the single OS message-pumping thread: it installs a
// WinEvent hook over the full event range with OUTOFCONTEXT|
// SKIPOWNPROCESS so this process's own overlay windows never feed back,
// registers hotkeys, and pumps messages until told to stop.
type EventPump struct {
	Events  chan RawWindowEvent
	Actions chan int // hotkey id

	threadID  uint32
	hook      uintptr
	hookCB    uintptr
	hotkeyIDs []int
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// pumpRegistry maps OS thread id to the EventPump owning that thread's
// hook callback — the hook callback is an OS-defined function pointer
// that cannot carry a Go closure, so dispatch goes through this
// package-level table instead, keyed by the thread that installed the
// hook (mirrors the single-slot-per-thread idiom used throughout the
// win32 example pack).
var pumpRegistry sync.Map // uint32 threadID -> *EventPump

// NewEventPump allocates a pump; call Run on a locked OS thread.
func NewEventPump() *EventPump {
	return &EventPump{
		Events:  make(chan RawWindowEvent, 64),
		Actions: make(chan int, 16),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// HotkeySpec is a registered hotkey's virtual-key code and modifier mask.
type HotkeySpec struct {
	Key  uint32
	Mods uint32
}

// Run installs the hook, registers hotkeys, and pumps messages. Call
// this from a goroutine that has called runtime.LockOSThread.
func (p *EventPump) Run(hotkeys map[int]HotkeySpec) error {
	defer close(p.doneCh)

	tid, _, _ := procGetCurrentThreadId.Call()
	p.threadID = uint32(tid)
	pumpRegistry.Store(p.threadID, p)
	defer pumpRegistry.Delete(p.threadID)

	cb := syscall.NewCallback(winEventShim)
	p.hookCB = cb
	hook, _, _ := procSetWinEventHook.Call(
		eventMin, eventMax, 0, cb, 0, 0,
		winEventOutOfContext|winEventSkipOwnProcess)
	p.hook = hook

	const modNoRepeat = 0x4000
	for id, hk := range hotkeys {
		procRegisterHotKey.Call(0, uintptr(id), uintptr(hk.Mods|modNoRepeat), uintptr(hk.Key))
		p.hotkeyIDs = append(p.hotkeyIDs, id)
	}

	const wmHotkey = 0x0312
	const wmQuit = 0x0012
	var msg struct {
		hwnd    uintptr
		message uint32
		wParam  uintptr
		lParam  uintptr
		time    uint32
		pt      struct{ x, y int32 }
	}
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 { // 0 = WM_QUIT, -1 = error
			break
		}
		if msg.message == wmHotkey {
			select {
			case p.Actions <- int(msg.wParam):
			default:
			}
			continue
		}
		if msg.message == wmQuit {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}

	p.cleanup()
	return nil
}

// Stop posts a quit message to the pump's own thread; the pump then
// unregisters every hotkey and unhooks on its own thread. Cleanup
// results are ignored, so a failure there is never fatal.
func (p *EventPump) Stop() {
	if p.threadID == 0 {
		return
	}
	const wmQuit = 0x0012
	procPostThreadMessageW.Call(uintptr(p.threadID), wmQuit, 0, 0)
	<-p.doneCh
}

func (p *EventPump) cleanup() {
	for _, id := range p.hotkeyIDs {
		procUnregisterHotKey.Call(0, uintptr(id))
	}
	if p.hook != 0 {
		procUnhookWinEvent.Call(p.hook)
	}
}

func winEventShim(_ uintptr, event uint32, hwnd windows.HWND, idObject, idChild int32, eventThread, _ uint32) uintptr {
	// An out-of-context callback runs on the thread that installed the
	// hook; eventThread is the thread that generated the event.
	tid, _, _ := procGetCurrentThreadId.Call()
	v, ok := pumpRegistry.Load(uint32(tid))
	if !ok {
		return 0
	}
	p := v.(*EventPump)
	kind, ok := translate(event, idObject)
	if !ok {
		return 0
	}
	select {
	case p.Events <- RawWindowEvent{Kind: kind, Handle: fromHWND(hwnd)}:
	default:
	}
	return 0
}

// EnumTopLevelWindows lists every currently-enumerable top-level HWND,
// used for the once-at-startup initial scan.
func EnumTopLevelWindows() []Handle {
	enumWindowsMu.Lock()
	defer enumWindowsMu.Unlock()
	enumWindowsOut = nil
	if enumWindowsCB == 0 {
		enumWindowsCB = syscall.NewCallback(enumWindowsProc)
	}
	procEnumWindows.Call(enumWindowsCB, 0)
	out := enumWindowsOut
	enumWindowsOut = nil
	return out
}

var (
	enumWindowsMu  sync.Mutex
	enumWindowsOut []Handle
	enumWindowsCB  uintptr
)

func enumWindowsProc(hwnd uintptr, _ uintptr) uintptr {
	enumWindowsOut = append(enumWindowsOut, fromHWND(windows.HWND(hwnd)))
	return 1
}
