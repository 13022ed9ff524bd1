package ui

import (
	"os"

	"golang.org/x/term"
)

// RawState is the terminal mode captured before entering raw mode, so
// it can be restored on shutdown.
type RawState struct {
	state *term.State
}

// EnableRawMode puts f (typically os.Stdin) into raw mode and returns
// the prior state for later restoration.
func EnableRawMode(f *os.File) (*RawState, error) {
	oldState, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return &RawState{state: oldState}, nil
}

// DisableRawMode restores f to the mode captured by EnableRawMode.
func DisableRawMode(f *os.File, s *RawState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(int(f.Fd()), s.state)
}

// TerminalSize queries f's current column/row dimensions, falling back
// to 80x24 when the ioctl fails (e.g. f is not a real tty, as in tests
// or --headless mode).
func TerminalSize(f *os.File) (width, height int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}
