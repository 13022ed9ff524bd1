package ui

import (
	"bufio"
	"io"
	"time"
)

// csiTimeout is the max time to wait for subsequent bytes within a CSI
// or SS3 sequence before giving up and treating what was read so far
// as a bare Esc.
const csiTimeout = 50 * time.Millisecond

// StartInput starts the input decoding loop over r and returns a
// channel of key events, closed once r is exhausted or done fires.
func StartInput(r io.Reader, done <-chan struct{}) <-chan KeyEvent {
	ch := make(chan KeyEvent)
	go inputLoop(r, ch, done)
	return ch
}

func inputLoop(r io.Reader, ch chan<- KeyEvent, done <-chan struct{}) {
	reader := bufio.NewReader(r)

	// Single goroutine reads raw bytes from the reader; it is the only
	// goroutine that touches it, so there is no data race on the
	// bufio.Reader itself.
	rawCh := make(chan byte, 128)
	go func() {
		for {
			b, err := reader.ReadByte()
			if err != nil {
				close(rawCh)
				return
			}
			rawCh <- b
		}
	}()

	for {
		select {
		case <-done:
			close(ch)
			return
		case b, ok := <-rawCh:
			if !ok {
				close(ch)
				return
			}
			if b == 0x1b {
				processEsc(rawCh, ch)
			} else {
				processChar(b, ch)
			}
		}
	}
}

func processEsc(rawCh <-chan byte, ch chan<- KeyEvent) {
	select {
	case next, ok := <-rawCh:
		if !ok {
			ch <- KeyEvent{Key: KeyEsc}
			return
		}
		switch next {
		case '[':
			parseCSI(rawCh, ch)
		case 'O':
			parseSS3(rawCh, ch)
		default:
			ch <- KeyEvent{Key: KeyChar, Rune: rune(next), Mod: ModAlt}
		}
	case <-time.After(10 * time.Millisecond):
		ch <- KeyEvent{Key: KeyEsc}
	}
}

func processChar(b byte, ch chan<- KeyEvent) {
	switch {
	case b <= 0x1f:
		switch b {
		case 0x0d:
			ch <- KeyEvent{Key: KeyEnter}
		case 0x09:
			ch <- KeyEvent{Key: KeyTab}
		case 0x08:
			ch <- KeyEvent{Key: KeyBackspace}
		case 0x03:
			ch <- KeyEvent{Key: KeyChar, Rune: 'c', Mod: ModCtrl}
		default:
			ch <- KeyEvent{Key: KeyChar, Rune: rune(b + 0x60), Mod: ModCtrl}
		}
	case b == 0x7f:
		ch <- KeyEvent{Key: KeyBackspace}
	default:
		ch <- KeyEvent{Key: KeyChar, Rune: rune(b)}
	}
}

func readByteTimeout(rawCh <-chan byte, timeout time.Duration) (byte, bool) {
	select {
	case b, ok := <-rawCh:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

func parseCSI(rawCh <-chan byte, ch chan<- KeyEvent) {
	var params []byte
	for {
		b, ok := readByteTimeout(rawCh, csiTimeout)
		if !ok {
			ch <- KeyEvent{Key: KeyEsc}
			return
		}
		if b >= 0x40 && b <= 0x7e {
			dispatchCSI(params, b, ch)
			return
		}
		params = append(params, b)
	}
}

func dispatchCSI(params []byte, final byte, ch chan<- KeyEvent) {
	p := string(params)

	switch final {
	case 'A':
		ch <- KeyEvent{Key: KeyArrowUp}
	case 'B':
		ch <- KeyEvent{Key: KeyArrowDown}
	case 'C':
		ch <- KeyEvent{Key: KeyArrowRight}
	case 'D':
		ch <- KeyEvent{Key: KeyArrowLeft}
	case 'H':
		ch <- KeyEvent{Key: KeyHome}
	case 'F':
		ch <- KeyEvent{Key: KeyEnd}
	case '~':
		key := p
		if i := indexOfByte(p, ';'); i >= 0 {
			key = p[:i]
		}
		switch key {
		case "1":
			ch <- KeyEvent{Key: KeyHome}
		case "2":
			ch <- KeyEvent{Key: KeyInsert}
		case "3":
			ch <- KeyEvent{Key: KeyDelete}
		case "4":
			ch <- KeyEvent{Key: KeyEnd}
		case "5":
			ch <- KeyEvent{Key: KeyPgUp}
		case "6":
			ch <- KeyEvent{Key: KeyPgDown}
		case "15":
			ch <- KeyEvent{Key: KeyF5}
		case "17":
			ch <- KeyEvent{Key: KeyF6}
		case "18":
			ch <- KeyEvent{Key: KeyF7}
		case "19":
			ch <- KeyEvent{Key: KeyF8}
		case "20":
			ch <- KeyEvent{Key: KeyF9}
		case "21":
			ch <- KeyEvent{Key: KeyF10}
		case "23":
			ch <- KeyEvent{Key: KeyF11}
		case "24":
			ch <- KeyEvent{Key: KeyF12}
		}
	}
}

func indexOfByte(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return i
		}
	}
	return -1
}

func parseSS3(rawCh <-chan byte, ch chan<- KeyEvent) {
	b, ok := readByteTimeout(rawCh, csiTimeout)
	if !ok {
		ch <- KeyEvent{Key: KeyEsc}
		return
	}
	switch b {
	case 'A':
		ch <- KeyEvent{Key: KeyArrowUp}
	case 'B':
		ch <- KeyEvent{Key: KeyArrowDown}
	case 'C':
		ch <- KeyEvent{Key: KeyArrowRight}
	case 'D':
		ch <- KeyEvent{Key: KeyArrowLeft}
	case 'P':
		ch <- KeyEvent{Key: KeyF1}
	case 'Q':
		ch <- KeyEvent{Key: KeyF2}
	case 'R':
		ch <- KeyEvent{Key: KeyF3}
	case 'S':
		ch <- KeyEvent{Key: KeyF4}
	case 'H':
		ch <- KeyEvent{Key: KeyHome}
	case 'F':
		ch <- KeyEvent{Key: KeyEnd}
	}
}
