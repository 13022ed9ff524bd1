package state

import (
	"testing"

	"github.com/rsvim/rsvim-go/buf"
	"github.com/rsvim/rsvim-go/ui"
	"github.com/stretchr/testify/assert"
)

func newTestFSM(text string) (*FSM, *Window) {
	w := newTestWindow(text)
	return NewFSM(w), w
}

func TestFSMSimpleMotionMovesCursor(t *testing.T) {
	f, w := newTestFSM("abcdef\n")
	f.HandleKey('l', false)
	assert.Equal(t, 1, w.CharIdx)
}

func TestFSMCountPrefixMultipliesMotion(t *testing.T) {
	f, w := newTestFSM("abcdefghij\n")
	f.HandleKey('3', true)
	f.HandleKey('l', false)
	assert.Equal(t, 3, w.CharIdx)
	assert.Equal(t, 0, f.PendingCount())
}

func TestFSMMultiDigitCountPrefix(t *testing.T) {
	f, w := newTestFSM("aaaaaaaaaaaaaaa\n") // 15 a's, last idx 14
	f.HandleKey('1', true)
	f.HandleKey('0', true)
	f.HandleKey('l', false)
	assert.Equal(t, 10, w.CharIdx)
}

func TestFSMLeadingZeroIsNotACountDigit(t *testing.T) {
	// A bare '0' with no prior digits is the "go to column 0" motion in
	// real vim, but this FSM has no builtin bound to '0'; it should not
	// be swallowed into the count accumulator either.
	f, _ := newTestFSM("abc\n")
	f.HandleKey('0', true)
	assert.Equal(t, 0, f.PendingCount())
}

func TestFSMColonEntersCommandLineExMode(t *testing.T) {
	f, w := newTestFSM("abc\n")
	f.HandleKey(':', false)
	assert.Equal(t, ModeCommandLineEx, w.Mode)
}

func TestFSMBoundKeyQueuesExCommandInsteadOfBuiltin(t *testing.T) {
	f, w := newTestFSM("abc\n")
	f.KeyBindings['l'] = "MyPlugin.run()"

	var queued string
	f.QueueExCommand = func(payload string) { queued = payload }

	f.HandleKey('l', false)

	assert.Equal(t, "MyPlugin.run()", queued)
	assert.Equal(t, 0, w.CharIdx) // builtin 'l' motion did NOT run
}

func TestFSMSubmitExCommandReturnsToNormalAndQueues(t *testing.T) {
	f, w := newTestFSM("abc\n")
	w.GotoCommandLineExMode()

	var queued string
	f.QueueExCommand = func(payload string) { queued = payload }

	f.SubmitExCommand("write")

	assert.Equal(t, ModeNormal, w.Mode)
	assert.Equal(t, "write", queued)
}

func TestFSMCommandNotFoundReportsUserVisibleError(t *testing.T) {
	f, _ := newTestFSM("abc\n")

	var reported string
	f.ReportError = func(msg string) { reported = msg }

	f.OnCommandNotFound("bogus")

	assert.Contains(t, reported, "bogus")
}

func TestFSMUnboundKeyIsIgnoredWithoutError(t *testing.T) {
	f, w := newTestFSM("abc\n")

	var reported string
	f.ReportError = func(msg string) { reported = msg }

	f.HandleKey('Z', false)

	assert.Equal(t, "", reported)
	assert.Equal(t, 0, w.CharIdx)
}

func TestFSMIgnoresKeysOutsideNormalMode(t *testing.T) {
	f, w := newTestFSM("abc\n")
	w.Mode = ModeInsert
	f.HandleKey('l', false)
	assert.Equal(t, 0, w.CharIdx)
}

// sanity check that the test window builder used across this package
// still produces a usable buffer/window pair.
func TestFSMHelperWindowIsUsable(t *testing.T) {
	w := newTestWindow("x\n")
	assert.NotNil(t, w.Buf)
	assert.Equal(t, ui.Options{Wrap: true}, w.Opt)
	_ = buf.NewBuffer
}
