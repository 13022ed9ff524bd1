// Command rsvim is the editor's CLI entry point: a single executable
// that opens zero or more file-path arguments into initial
// buffers/windows, prints its version, or runs headless for the test
// harness.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rsvim/rsvim-go/editor"
	"github.com/rsvim/rsvim-go/jsrt"
	"github.com/rsvim/rsvim-go/state"
	"github.com/rsvim/rsvim-go/ui"
)

// version is stamped at release time; left as a placeholder for a
// development build.
var version = "dev"

const (
	exitOK             = 0
	exitInitError      = 1
	exitTerminalError  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("rsvim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "print version and exit")
	headless := fs.Bool("headless", false, "run without a real terminal (test harness)")
	_ = fs.String("js-flags", "", "flags passed through to the scripting runtime verbatim")

	if err := fs.Parse(args); err != nil {
		return exitInitError
	}

	if *showVersion {
		fmt.Fprintf(stdout, "rsvim %s\n", version)
		return exitOK
	}

	paths := fs.Args()

	configHome, err := editor.ResolveConfigHome()
	if err != nil {
		fmt.Fprintf(stderr, "rsvim: %v\n", err)
		return exitInitError
	}

	width, height := 80, 24
	if !*headless {
		w, h := ui.TerminalSize(stdin)
		width, height = w, h
	}

	ed := editor.New(width, height, ui.Options{Wrap: true})
	if len(paths) == 0 {
		ed.OpenBuffer("")
	}
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			// A file that cannot be read (missing or otherwise) opens
			// as a new empty buffer; read errors are non-fatal.
			ed.OpenBuffer("")
			continue
		}
		ed.OpenBuffer(string(content))
	}

	bridge := jsrt.New(ed, nil)
	if err := loadConfig(bridge, configHome); err != nil {
		fmt.Fprintf(stderr, "rsvim: %v\n", err)
		return exitInitError
	}
	loop := jsrt.NewLoop(bridge, 256)

	if *headless {
		loop.Tick()
		return exitOK
	}

	term, err := ui.NewTerminal(stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "rsvim: %v\n", err)
		return exitTerminalError
	}
	defer term.Close()

	frame := ui.NewFrame(width, height)
	fsm := state.NewFSM(ed.ActiveWindow())
	fsm.QueueExCommand = func(payload string) { loop.Send(jsrt.ExCommandReq{Payload: payload}) }
	fsm.ReportError = func(msg string) { fmt.Fprintf(stderr, "%s\n", msg) }
	var cmdline []rune

	for {
		select {
		case ev, ok := <-term.Keys():
			if !ok {
				return exitOK
			}
			if ev.Key == ui.KeyEsc && ev.Mod == ui.ModCtrl {
				return exitOK
			}
			handleKeyEvent(ed, fsm, ev, &cmdline)
		case msg := <-loop.Outbox():
			handleMasterMessage(msg, stderr, loop)
		}

		dirty := ui.Render(ed.Tree, frame)
		win := ed.ActiveWindow()
		term.Flush(frame, dirty, win.StartCol, win.LineIdx-win.StartLine, ui.CursorBlock)
	}
}

// handleKeyEvent routes a decoded key either to the command-line text
// buffer (while the active window is in command-line-ex mode) or to
// the normal-mode FSM.
func handleKeyEvent(ed *editor.Editor, fsm *state.FSM, ev ui.KeyEvent, cmdline *[]rune) {
	win := ed.ActiveWindow()
	if win.Mode == state.ModeCommandLineEx {
		switch ev.Key {
		case ui.KeyEnter:
			fsm.SubmitExCommand(string(*cmdline))
			*cmdline = nil
		case ui.KeyEsc:
			win.ExitToNormalMode()
			*cmdline = nil
		case ui.KeyBackspace:
			if n := len(*cmdline); n > 0 {
				*cmdline = (*cmdline)[:n-1]
			}
		case ui.KeyChar:
			*cmdline = append(*cmdline, ev.Rune)
		}
		return
	}

	switch ev.Key {
	case ui.KeyChar:
		fsm.HandleKey(ev.Rune, ev.Rune >= '0' && ev.Rune <= '9')
	case ui.KeyEnter:
		fsm.HandleKey('\n', false)
	}
}

func handleMasterMessage(msg jsrt.MasterMessage, stderr *os.File, loop *jsrt.Loop) {
	switch m := msg.(type) {
	case jsrt.TickAgainReq:
		loop.Tick()
	case jsrt.CommandNotFoundResp:
		fmt.Fprintf(stderr, "E492: not an editor command: %s\n", m.Payload)
	case jsrt.ScriptErrorResp:
		fmt.Fprintf(stderr, "%s\n", m.Message)
	}
}

// loadConfig evaluates rsvim.js from configHome if present; a missing
// config file is not an error.
func loadConfig(bridge *jsrt.Bridge, configHome string) error {
	path := configHome + string(os.PathSeparator) + "rsvim.js"
	src, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if _, err := bridge.VM.RunString(string(src)); err != nil {
		return editor.NewBuiltinInitError("failed to evaluate %s: %v", path, err)
	}
	return nil
}
