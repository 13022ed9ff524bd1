package jsrt

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"

	"github.com/rsvim/rsvim-go/editor"
)

// timerEntry is a single set_timeout/set_interval registration.
type timerEntry struct {
	callback goja.Callable
	delay    int
	repeated bool
}

// future is a unit of deferred work the scripting task runs once per
// tick: a fired timer callback or a resolved ex-command handler.
type future func(b *Bridge) error

// Bridge is the host API surface bound onto a goja.Runtime. Exactly
// one Bridge per editor process, driven exclusively from the
// scripting task.
type Bridge struct {
	VM    *goja.Runtime
	Graph *Graph
	Ed    *editor.Editor

	registry *require.Registry

	timers      map[int]*timerEntry
	nextTimerID int

	exCommands map[string]goja.Callable

	pendingFutures []future

	unhandledRejections map[*goja.Promise]string
	onUncaughtException goja.Callable
	onUnhandledRejection goja.Callable

	nextImportTaskID  int
	pendingLoads      map[int]func(source *string)
	requestLoadImport func(taskID int, path string)
}

// New creates a Bridge wired to ed, with goja_nodejs's require and
// console modules enabled (grounded on
// other_examples/manifests/joeycumines-one-shot-man's pairing of goja
// with goja_nodejs).
func New(ed *editor.Editor, requestLoadImport func(taskID int, path string)) *Bridge {
	vm := goja.New()
	registry := new(require.Registry)
	registry.Enable(vm)
	console.Enable(vm)

	b := &Bridge{
		VM:                   vm,
		Graph:                NewGraph(),
		Ed:                   ed,
		registry:             registry,
		timers:               make(map[int]*timerEntry),
		exCommands:           make(map[string]goja.Callable),
		unhandledRejections:  make(map[*goja.Promise]string),
		pendingLoads:         make(map[int]func(source *string)),
		requestLoadImport:    requestLoadImport,
	}
	b.installHostAPI()
	return b
}

// installHostAPI wires the "rsvim" global namespace: buffer
// read/write, cursor query/move, window splits, ex-command
// registration, and timers.
func (b *Bridge) installHostAPI() {
	ns := b.VM.NewObject()

	_ = ns.Set("bufferLineCount", func(call goja.FunctionCall) goja.Value {
		win := b.Ed.ActiveWindow()
		if win == nil {
			return goja.Undefined()
		}
		return b.VM.ToValue(win.Buf.Rope().LenLines())
	})

	_ = ns.Set("bufferReadLine", func(call goja.FunctionCall) goja.Value {
		win := b.Ed.ActiveWindow()
		if win == nil || len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		idx := int(call.Argument(0).ToInteger())
		line := win.Buf.Rope().Line(idx)
		return b.VM.ToValue(string(line))
	})

	_ = ns.Set("cursorPosition", func(call goja.FunctionCall) goja.Value {
		win := b.Ed.ActiveWindow()
		if win == nil {
			return goja.Undefined()
		}
		pos := b.VM.NewObject()
		_ = pos.Set("line", win.LineIdx)
		_ = pos.Set("char", win.CharIdx)
		return pos
	})

	_ = ns.Set("cursorMoveTo", func(call goja.FunctionCall) goja.Value {
		win := b.Ed.ActiveWindow()
		if win == nil || len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		x := int(call.Argument(0).ToInteger())
		y := int(call.Argument(1).ToInteger())
		win.CursorMoveTo(x, y)
		return goja.Undefined()
	})

	_ = ns.Set("splitWindow", func(call goja.FunctionCall) goja.Value {
		vertical := len(call.Arguments) > 0 && call.Argument(0).ToBoolean()
		id, ok := b.Ed.SplitWindow(vertical)
		if !ok {
			return goja.Undefined()
		}
		return b.VM.ToValue(int(id))
	})

	_ = ns.Set("registerExCommand", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(b.VM.NewTypeError("registerExCommand(name, callback) requires 2 arguments"))
		}
		name := call.Argument(0).String()
		fn, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			panic(b.VM.NewTypeError("registerExCommand callback must be a function"))
		}
		b.exCommands[name] = fn
		return goja.Undefined()
	})

	_ = ns.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		return b.VM.ToValue(b.armTimer(call, false))
	})
	_ = ns.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		return b.VM.ToValue(b.armTimer(call, true))
	})
	_ = ns.Set("clearTimeout", func(call goja.FunctionCall) goja.Value {
		b.clearTimer(call)
		return goja.Undefined()
	})
	_ = ns.Set("clearInterval", func(call goja.FunctionCall) goja.Value {
		b.clearTimer(call)
		return goja.Undefined()
	})

	_ = ns.Set("onUncaughtException", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if ok {
			b.onUncaughtException = fn
		}
		return goja.Undefined()
	})
	_ = ns.Set("onUnhandledRejection", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if ok {
			b.onUnhandledRejection = fn
		}
		return goja.Undefined()
	})

	_ = ns.Set("importModule", func(call goja.FunctionCall) goja.Value {
		path := call.Argument(0).String()
		p, resolve, reject := b.VM.NewPromise()
		b.beginDynamicImport(path, resolve, reject)
		return b.VM.ToValue(p)
	})

	_ = b.VM.Set("rsvim", ns)
}

func (b *Bridge) armTimer(call goja.FunctionCall, repeated bool) int {
	fn, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(b.VM.NewTypeError("timer callback must be a function"))
	}
	delay := 0
	if len(call.Arguments) > 1 {
		delay = int(call.Argument(1).ToInteger())
	}
	id := b.nextTimerID
	b.nextTimerID++
	b.timers[id] = &timerEntry{callback: fn, delay: delay, repeated: repeated}
	return id
}

func (b *Bridge) clearTimer(call goja.FunctionCall) {
	if len(call.Arguments) < 1 {
		return
	}
	delete(b.timers, int(call.Argument(0).ToInteger()))
}

// HandleTimeout implements the TimeoutResp contract: fire the stored
// callback, dropping silently if it was cancelled.
func (b *Bridge) HandleTimeout(msg TimeoutResp) {
	entry, ok := b.timers[msg.TimerID]
	if !ok {
		return
	}
	if !msg.Repeated {
		delete(b.timers, msg.TimerID)
	}
	b.pendingFutures = append(b.pendingFutures, func(b *Bridge) error {
		_, err := entry.callback(goja.Undefined())
		return err
	})
}

// HandleExCommand implements the ExCommandReq contract: resolve the
// payload's command name against the registry, schedule its callback
// as a pending future on a hit, or return CommandNotFoundResp on a
// miss.
func (b *Bridge) HandleExCommand(msg ExCommandReq) *CommandNotFoundResp {
	name, args := splitExCommand(msg.Payload)
	fn, ok := b.exCommands[name]
	if !ok {
		return &CommandNotFoundResp{Payload: msg.Payload}
	}
	b.pendingFutures = append(b.pendingFutures, func(b *Bridge) error {
		_, err := fn(goja.Undefined(), b.VM.ToValue(args))
		return err
	})
	return nil
}

func splitExCommand(payload string) (name, rest string) {
	for i, r := range payload {
		if r == ' ' {
			return payload[:i], payload[i+1:]
		}
	}
	return payload, ""
}

// beginDynamicImport registers path as a new pending root graph and
// requests the master load it via a LoadImportResp round-trip.
func (b *Bridge) beginDynamicImport(path string, resolve, reject func(interface{})) {
	b.Graph.Record(path)
	b.Graph.MarkRoot(path)
	b.Graph.QueueDynamicImport(path,
		func(ns goja.Value) { resolve(ns) },
		func(err error) { reject(b.VM.ToValue(err.Error())) },
	)
	taskID := b.nextImportTaskID
	b.nextImportTaskID++
	b.pendingLoads[taskID] = func(source *string) {
		r := b.Graph.seen[path]
		if source == nil {
			r.status = Errored
			r.err = fmt.Errorf("module load error: %s", path)
			return
		}
		r.source = *source
		r.status = Fetched
		prog, err := goja.Compile(path, *source, true)
		if err != nil {
			r.status = Errored
			r.err = err
			return
		}
		r.program = prog
		r.status = Instantiated
		r.status = Ready
	}
	if b.requestLoadImport != nil {
		b.requestLoadImport(taskID, path)
	}
}

// HandleLoadImportResp implements the LoadImportResp contract.
func (b *Bridge) HandleLoadImportResp(msg LoadImportResp) {
	cb, ok := b.pendingLoads[msg.TaskID]
	if !ok {
		return
	}
	delete(b.pendingLoads, msg.TaskID)
	cb(msg.MaybeSource)
}

// RunPendingFutures runs every pending future exactly once, in
// queued order. Errors are reported via the
// reportError callback rather than returned, since a throwing future
// must not abort the tick.
func (b *Bridge) RunPendingFutures(reportError func(message string)) {
	futures := b.pendingFutures
	b.pendingFutures = nil
	for _, f := range futures {
		if err := f(b); err != nil {
			reportError(fmt.Sprintf("uncaught exception: %v", err))
		}
		b.VM.RunString("") // cheap per-future microtask checkpoint nudge (goja drains jobs on Run*)
	}
}

// HasPendingWork reports whether the scripting task should request
// another tick: a pending module graph, a queued future, an unhandled
// rejection, or an armed timer (one-shot timers are disarmed once they
// fire; repeating ones stay armed until cleared).
func (b *Bridge) HasPendingWork() bool {
	return b.Graph.Pending() || len(b.pendingFutures) > 0 || len(b.unhandledRejections) > 0 || len(b.timers) > 0
}

// AdvanceModuleGraph runs one module-graph settlement pass.
func (b *Bridge) AdvanceModuleGraph() {
	b.Graph.Advance(func(r *moduleRecord) (goja.Value, error) {
		if r.program == nil {
			return goja.Undefined(), fmt.Errorf("module never compiled: %s", r.path)
		}
		v, err := b.VM.RunProgram(r.program)
		if err != nil {
			return goja.Undefined(), err
		}
		return v, nil
	})
}
