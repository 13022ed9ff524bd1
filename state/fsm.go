package state

import "fmt"

// Action is a table-driven normal-mode binding: a built-in motion or
// mode transition, invoked with the accumulated count prefix (already
// defaulted to 1 when no digits preceded the keystroke).
type Action func(w *Window, count int)

// builtins is the default normal-mode key table.
var builtins = map[rune]Action{
	'h': func(w *Window, n int) { w.CursorMoveLeftBy(n) },
	'l': func(w *Window, n int) { w.CursorMoveRightBy(n) },
	'j': func(w *Window, n int) { w.CursorMoveDownBy(n) },
	'k': func(w *Window, n int) { w.CursorMoveUpBy(n) },
	'i': func(w *Window, _ int) { w.GotoInsertMode(InsertKeep) },
	'a': func(w *Window, _ int) { w.GotoInsertMode(InsertAppend) },
	'o': func(w *Window, _ int) { w.GotoInsertMode(InsertNewLine) },
}

// FSM is the normal-mode state machine: a pure translator from key
// events to window operations, plus the count-prefix accumulator for
// sequences like "3j", "10l".
type FSM struct {
	window *Window
	count  int

	// KeyBindings maps a normal-mode key to a user-defined ex-command
	// payload. A bound key dispatches QueueExCommand instead of a
	// built-in motion, even when the same key also has a builtin (user
	// bindings take priority, matching how real keymaps override
	// defaults).
	KeyBindings map[rune]string

	// QueueExCommand is the side effect directed at the scripting
	// runtime for both bound keys and explicit ":" command-line
	// submissions.
	QueueExCommand func(payload string)

	// ReportError is the user-visible reporting channel, invoked when
	// the scripting runtime reports CommandNotFound for a payload this
	// FSM queued.
	ReportError func(message string)
}

// NewFSM creates an FSM driving w.
func NewFSM(w *Window) *FSM {
	return &FSM{window: w, KeyBindings: make(map[rune]string)}
}

// HandleKey translates one decoded key event into a window operation,
// a queued ex-command, or a count-digit accumulation. It never blocks
// and never returns an error itself; user-visible errors arrive later
// through ReportError once the scripting runtime responds.
func (f *FSM) HandleKey(key rune, isDigit bool) {
	if f.window.Mode != ModeNormal {
		return
	}

	if isDigit {
		d := int(key - '0')
		if d != 0 || f.count != 0 {
			f.count = f.count*10 + d
			return
		}
	}

	n := f.count
	if n == 0 {
		n = 1
	}
	f.count = 0

	if key == ':' {
		f.window.GotoCommandLineExMode()
		return
	}

	if payload, bound := f.KeyBindings[key]; bound {
		if f.QueueExCommand != nil {
			f.QueueExCommand(payload)
		}
		return
	}

	if action, ok := builtins[key]; ok {
		action(f.window, n)
		return
	}
	// No binding for this key: ignored. An unrecognized keystroke is
	// not an error by itself.
}

// SubmitExCommand queues the command line's contents as an ex-command
// and returns to normal mode, mirroring a real submit keystroke (e.g.
// Enter while in CommandLineEx mode).
func (f *FSM) SubmitExCommand(payload string) {
	f.window.ExitToNormalMode()
	if f.QueueExCommand != nil {
		f.QueueExCommand(payload)
	}
}

// OnCommandNotFound is called when the scripting runtime could
// not resolve a previously queued ex-command payload. The normal-mode
// layer surfaces this as a user-visible error; the
// keystroke that produced it was already consumed when it was queued.
func (f *FSM) OnCommandNotFound(payload string) {
	if f.ReportError != nil {
		f.ReportError(fmt.Sprintf("E492: not an editor command: %s", payload))
	}
}

// PendingCount reports the count accumulated so far (0 if none), for
// status-line display.
func (f *FSM) PendingCount() int {
	return f.count
}
