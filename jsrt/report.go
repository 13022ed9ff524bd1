package jsrt

import (
	"fmt"

	"github.com/dop251/goja"
)

// reportUncaught invokes the configured uncaughtException hook if any;
// if the hook itself throws, the hook's own error is reported and the
// original is dropped.
func (b *Bridge) reportUncaught(message string) MasterMessage {
	if b.onUncaughtException != nil {
		if _, err := b.onUncaughtException(nil, b.VM.ToValue(message)); err != nil {
			return ScriptErrorResp{Message: fmt.Sprintf("error in uncaughtException hook: %v", err)}
		}
		return nil
	}
	return ScriptErrorResp{Message: message}
}

// reportUnhandledRejection invokes the configured unhandledRejection
// hook, falling back to uncaughtException when no rejection hook is
// configured.
func (b *Bridge) reportUnhandledRejection(message string) MasterMessage {
	if b.onUnhandledRejection != nil {
		if _, err := b.onUnhandledRejection(nil, b.VM.ToValue(message)); err != nil {
			return ScriptErrorResp{Message: fmt.Sprintf("error in unhandledRejection hook: %v", err)}
		}
		return nil
	}
	if b.onUncaughtException != nil {
		return b.reportUncaught(message)
	}
	return ScriptErrorResp{Message: message, InPromise: true}
}

// TrackRejection records p as rejected with message, to be reported at
// the end of the tick unless it is resolved/caught first.
func (b *Bridge) TrackRejection(p *goja.Promise, message string) {
	b.unhandledRejections[p] = message
}

// ClearRejection removes a tracked rejection, e.g. once its module
// evaluation error has already been reported once.
func (b *Bridge) ClearRejection(p *goja.Promise) {
	delete(b.unhandledRejections, p)
}

// FlushUnhandledRejections runs at the end of every tick: for every
// still-unhandled rejection, invoke the reporting fallback chain and
// clear the set.
func (b *Bridge) FlushUnhandledRejections(emit func(MasterMessage)) {
	if len(b.unhandledRejections) == 0 {
		return
	}
	for key, message := range b.unhandledRejections {
		if msg := b.reportUnhandledRejection(message); msg != nil {
			emit(msg)
		}
		delete(b.unhandledRejections, key)
	}
}
