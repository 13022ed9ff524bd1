package jsrt

// Loop drives the scripting task side of the editor's two-task message
// hub: it owns toScripting/toMaster channels and runs the fixed
// per-tick sequence (drain messages, run futures, advance the module
// graph, decide whether to request another tick).
//
// The master task (terminal, widget tree, buffer manager, frame, and
// paints) lives outside this package; Loop only implements the
// scripting task's half of the protocol so the master can embed it
// however it schedules goroutines.
type Loop struct {
	Bridge *Bridge

	toScripting chan Message
	toMaster    chan MasterMessage
}

// NewLoop creates a Loop over b, with the given channel depth bounding
// how many messages drainMessages will ever process in one tick.
func NewLoop(b *Bridge, queueDepth int) *Loop {
	return &Loop{
		Bridge:      b,
		toScripting: make(chan Message, queueDepth),
		toMaster:    make(chan MasterMessage, queueDepth),
	}
}

// Send enqueues a message from the master task to the scripting task.
func (l *Loop) Send(msg Message) {
	l.toScripting <- msg
}

// Outbox is the channel the master task should receive from to learn
// about TickAgainReq / CommandNotFoundResp / ScriptErrorResp.
func (l *Loop) Outbox() <-chan MasterMessage {
	return l.toMaster
}

// Tick runs exactly one iteration of the scripting task:
//  1. drain all pending messages
//  2. run each pending future once, reporting captured errors
//  3. advance the module graph
//  4. decide whether to request another tick
//
// Tick never blocks: it drains only what is already queued.
func (l *Loop) Tick() {
	l.drainMessages()

	l.Bridge.RunPendingFutures(func(message string) {
		l.toMaster <- l.Bridge.reportUncaught(message)
	})

	l.Bridge.AdvanceModuleGraph()

	l.Bridge.FlushUnhandledRejections(func(msg MasterMessage) {
		l.toMaster <- msg
	})

	if l.Bridge.HasPendingWork() {
		l.toMaster <- TickAgainReq{}
	}
}

func (l *Loop) drainMessages() {
	for {
		select {
		case msg := <-l.toScripting:
			l.dispatch(msg)
		default:
			return
		}
	}
}

func (l *Loop) dispatch(msg Message) {
	switch m := msg.(type) {
	case TimeoutResp:
		l.Bridge.HandleTimeout(m)
	case ExCommandReq:
		if miss := l.Bridge.HandleExCommand(m); miss != nil {
			l.toMaster <- *miss
		}
	case LoadImportResp:
		l.Bridge.HandleLoadImportResp(m)
	case TickAgainResp:
		// no-op acknowledgement, only used to pump the loop.
	}
}

// Run drives Tick in a loop on the calling goroutine until done is
// closed, blocking between ticks for the next inbound message. Callers
// that need non-blocking control (e.g. to interleave with a select
// over terminal events) should call Tick directly instead.
func (l *Loop) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-l.toScripting:
			l.dispatch(msg)
			l.Tick()
		}
	}
}
