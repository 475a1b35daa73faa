package model

import "github.com/jmelosegui/mosaico/internal/layout"

// WindowEventKind is the abstract event set C8 translates OS
// accessibility events into.
type WindowEventKind int

const (
	Created WindowEventKind = iota
	Destroyed
	Focused
	Moved
	Minimized
	Restored
	TitleChanged
)

// WindowEvent is one translated OS notification.
type WindowEvent struct {
	Kind   WindowEventKind
	Handle layout.Handle
}

// CommandKind tags an IPC-originated request.
type CommandKind int

const (
	CmdStop CommandKind = iota
	CmdStatus
	CmdAction
)

// Command is a request decoded off the control channel, paired with a
// reply slot the controller fills exactly once.
type Command struct {
	Kind   CommandKind
	Action string // kebab-case action name, valid when Kind == CmdAction
	Reply  chan CommandResult
}

// CommandResult is written to Command.Reply exactly once.
type CommandResult struct {
	OK      bool
	Message string
}

// ReloadKind tags which config file changed.
type ReloadKind int

const (
	ReloadConfig ReloadKind = iota
	ReloadRules
	ReloadBar
)

// Reload carries a validated, freshly-parsed config payload. The
// controller type-switches on Kind and reads the matching field.
type Reload struct {
	Kind ReloadKind
	Data any
}
