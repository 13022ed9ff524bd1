package ui

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
)

// CursorShape selects the terminal's reported cursor glyph.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Terminal is the master task's terminal collaborator: it owns raw
// mode, the alternate screen, the decoded key-event stream, and a
// write sink that flushes a Frame's dirty rows as an efficient
// per-cell paint batch plus cursor directives.
type Terminal struct {
	mu  sync.Mutex
	out *bufio.Writer
	in  *os.File

	raw *RawState

	keys     <-chan KeyEvent
	done     chan struct{}
	resizeCh chan os.Signal

	OnResize func(width, height int)

	posBuf []byte
}

// NewTerminal wires in/out as the terminal's input/output, enters raw
// mode and the alternate screen, and starts the key-decoding and
// resize-notification loops. Callers must call Close to restore the
// terminal on shutdown, even when exiting via a TerminalIoError.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	t := &Terminal{
		in:     in,
		out:    bufio.NewWriterSize(out, 64*1024),
		done:   make(chan struct{}),
		posBuf: make([]byte, 0, 32),
	}

	raw, err := EnableRawMode(in)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	t.raw = raw

	t.out.WriteString("\x1b[?1049h") // enter alternate screen
	t.out.WriteString("\x1b[?25l")   // hide cursor
	t.out.Flush()

	t.keys = StartInput(in, t.done)

	t.resizeCh = make(chan os.Signal, 1)
	signal.Notify(t.resizeCh, syscall.SIGWINCH)
	go t.handleResize()

	return t, nil
}

// Keys returns the decoded key-event stream.
func (t *Terminal) Keys() <-chan KeyEvent { return t.keys }

// Close leaves the alternate screen, restores cooked mode, and stops
// background loops.
func (t *Terminal) Close() error {
	signal.Stop(t.resizeCh)

	t.mu.Lock()
	defer t.mu.Unlock()

	close(t.done)
	t.out.WriteString("\x1b[?25h")   // show cursor
	t.out.WriteString("\x1b[?1049l") // leave alternate screen
	t.out.Flush()

	return DisableRawMode(t.in, t.raw)
}

func (t *Terminal) handleResize() {
	for {
		select {
		case <-t.done:
			return
		case <-t.resizeCh:
			w, h := TerminalSize(t.in)
			if t.OnResize != nil {
				t.OnResize(w, h)
			}
		}
	}
}

// Flush paints every row in dirtyRows from f to the terminal and
// positions the hardware cursor at (cursorX, cursorY) with the given
// shape. It never touches rows outside dirtyRows.
func (t *Terminal) Flush(f *Frame, dirtyRows []int, cursorX, cursorY int, shape CursorShape) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var lastStyle Style
	styleActive := false

	for _, y := range dirtyRows {
		t.writeCursorPos(y+1, 1)
		for x := 0; x < f.Width(); x++ {
			cell := f.GetCell(x, y)
			if !styleActive || cell.Style != lastStyle {
				if styleActive {
					t.out.WriteString("\x1b[0m")
				}
				t.writeStyle(cell.Style)
				lastStyle = cell.Style
				styleActive = true
			}
			sym := cell.Symbol
			if sym == "" {
				sym = " "
			}
			t.out.WriteString(sym)
		}
	}
	if styleActive {
		t.out.WriteString("\x1b[0m")
	}

	t.writeCursorShape(shape)
	t.writeCursorPos(cursorY+1, cursorX+1)
	t.out.WriteString("\x1b[?25h")
	t.out.Flush()
}

func (t *Terminal) writeCursorPos(row, col int) {
	t.posBuf = t.posBuf[:0]
	t.posBuf = append(t.posBuf, '\x1b', '[')
	t.posBuf = strconv.AppendInt(t.posBuf, int64(row), 10)
	t.posBuf = append(t.posBuf, ';')
	t.posBuf = strconv.AppendInt(t.posBuf, int64(col), 10)
	t.posBuf = append(t.posBuf, 'H')
	t.out.Write(t.posBuf)
}

func (t *Terminal) writeCursorShape(shape CursorShape) {
	switch shape {
	case CursorBlock:
		t.out.WriteString("\x1b[2 q")
	case CursorUnderline:
		t.out.WriteString("\x1b[4 q")
	case CursorBar:
		t.out.WriteString("\x1b[6 q")
	}
}

func (t *Terminal) writeStyle(st Style) {
	if st.Bold {
		t.out.WriteString("\x1b[1m")
	}
	if st.Dim {
		t.out.WriteString("\x1b[2m")
	}
	if st.Italic {
		t.out.WriteString("\x1b[3m")
	}
	if st.Underline {
		t.out.WriteString("\x1b[4m")
	}
	if st.Strike {
		t.out.WriteString("\x1b[9m")
	}
	if st.Reverse {
		t.out.WriteString("\x1b[7m")
	}
	if st.Blink {
		t.out.WriteString("\x1b[5m")
	}
	if st.Fg != "" {
		t.out.WriteString(st.Fg)
	}
	if st.Bg != "" {
		t.out.WriteString(st.Bg)
	}
}
