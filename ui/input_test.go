package ui

import (
	"strings"
	"testing"
	"time"
)

func collect(t *testing.T, input string, n int) []KeyEvent {
	t.Helper()
	done := make(chan struct{})
	defer close(done)
	ch := StartInput(strings.NewReader(input), done)

	var events []KeyEvent
	for i := 0; i < n; i++ {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed after %d events, wanted %d", i, n)
			}
			events = append(events, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	return events
}

func TestInputPlainChar(t *testing.T) {
	events := collect(t, "a", 1)
	if events[0].Key != KeyChar || events[0].Rune != 'a' || events[0].Kind != KeyPress {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestInputCtrlChar(t *testing.T) {
	events := collect(t, "\x03", 1)
	if events[0].Key != KeyChar || events[0].Rune != 'c' || events[0].Mod != ModCtrl {
		t.Fatalf("unexpected ctrl-c decode: %+v", events[0])
	}
}

func TestInputArrowKeyCSI(t *testing.T) {
	events := collect(t, "\x1b[A", 1)
	if events[0].Key != KeyArrowUp {
		t.Fatalf("expected arrow up, got %+v", events[0])
	}
}

func TestInputFunctionKeySS3(t *testing.T) {
	events := collect(t, "\x1bOP", 1)
	if events[0].Key != KeyF1 {
		t.Fatalf("expected F1, got %+v", events[0])
	}
}

func TestInputTildeTerminatedCSI(t *testing.T) {
	events := collect(t, "\x1b[3~", 1)
	if events[0].Key != KeyDelete {
		t.Fatalf("expected delete, got %+v", events[0])
	}
}

func TestInputEnterAndTab(t *testing.T) {
	events := collect(t, "\r\t", 2)
	if events[0].Key != KeyEnter || events[1].Key != KeyTab {
		t.Fatalf("unexpected events: %+v", events)
	}
}
