// Package editor wires the core components (buffer manager, windows,
// widget tree, config) into one running process, and defines the
// error taxonomy that crosses the master/scripting task boundary.
package editor

import "fmt"

// Kind identifies one of the editor's error categories. Each carries
// its own propagation policy; Kind lets a typed message crossing the
// task boundary be switched on without string matching.
type Kind int

const (
	// UserInputError is e.g. an unknown ex-command or invalid key
	// sequence. Reported in the command-line area; never aborts the
	// editor.
	UserInputError Kind = iota
	// ScriptError is an uncaught exception or unhandled promise
	// rejection from user code. Routed through the configured hook if
	// any; the editor keeps running.
	ScriptError
	// ModuleLoadError is a path that cannot be resolved/read, or a
	// module that fails to parse/instantiate. Rejects any associated
	// dynamic-import promise; for static top-level loads the module
	// stays Errored so re-imports fail fast.
	ModuleLoadError
	// BuiltinInitError is a builtin module failing to evaluate at
	// startup. Fatal.
	BuiltinInitError
	// TerminalIoError is an inability to read or write the terminal.
	// Fatal; cooked mode is restored if possible before exit.
	TerminalIoError
)

func (k Kind) String() string {
	switch k {
	case UserInputError:
		return "UserInputError"
	case ScriptError:
		return "ScriptError"
	case ModuleLoadError:
		return "ModuleLoadError"
	case BuiltinInitError:
		return "BuiltinInitError"
	case TerminalIoError:
		return "TerminalIoError"
	default:
		return "UnknownError"
	}
}

// Fatal reports whether an error of this Kind should terminate the
// process. Only BuiltinInitError and TerminalIoError are fatal.
func (k Kind) Fatal() bool {
	return k == BuiltinInitError || k == TerminalIoError
}

// Error is the typed, human-readable error that crosses the
// master/scripting task boundary.
type Error struct {
	Kind    Kind
	Message string
	// InPromise marks a ScriptError that originated from an unhandled
	// promise rejection rather than a thrown exception; such errors are
	// reported with a "(in promise) " prefix.
	InPromise bool
}

func (e *Error) Error() string {
	if e.Kind == ScriptError && e.InPromise {
		return fmt.Sprintf("(in promise) %s", e.Message)
	}
	return e.Message
}

// NewUserInputError builds a non-fatal UserInputError, e.g. for
// CommandNotFound.
func NewUserInputError(format string, args ...interface{}) *Error {
	return &Error{Kind: UserInputError, Message: fmt.Sprintf(format, args...)}
}

// NewScriptError builds a ScriptError, optionally flagged as
// originating from an unhandled promise rejection.
func NewScriptError(message string, inPromise bool) *Error {
	return &Error{Kind: ScriptError, Message: message, InPromise: inPromise}
}

// NewModuleLoadError builds a non-fatal ModuleLoadError.
func NewModuleLoadError(format string, args ...interface{}) *Error {
	return &Error{Kind: ModuleLoadError, Message: fmt.Sprintf(format, args...)}
}

// NewBuiltinInitError builds a fatal BuiltinInitError.
func NewBuiltinInitError(format string, args ...interface{}) *Error {
	return &Error{Kind: BuiltinInitError, Message: fmt.Sprintf(format, args...)}
}

// NewTerminalIoError builds a fatal TerminalIoError.
func NewTerminalIoError(format string, args ...interface{}) *Error {
	return &Error{Kind: TerminalIoError, Message: fmt.Sprintf(format, args...)}
}
