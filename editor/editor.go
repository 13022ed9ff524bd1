package editor

import (
	"os"
	"path/filepath"

	"github.com/rsvim/rsvim-go/buf"
	"github.com/rsvim/rsvim-go/state"
	"github.com/rsvim/rsvim-go/ui"
)

// WindowNode is the leaf value type for a window split: the widget
// tree carries layout nodes generically, and a WindowNode is one of
// them, holding the state.Window it displays.
type WindowNode struct {
	Win *state.Window
}

// Paint satisfies ui.Paintable by painting the window's assembled
// viewport into f. The canvas renderer calls this during Render.
func (n *WindowNode) Paint(f *ui.Frame, abs ui.Rect) {
	vp := ui.Assemble(n.Win.Buf, abs.W, abs.H, n.Win.StartLine, n.Win.StartCol, n.Win.Opt)
	for _, row := range vp.Rows {
		line := n.Win.Buf.Rope().Line(row.LineIdx)
		end := row.EndCharIdx
		if end > len(line) {
			end = len(line)
		}
		cells := make([]ui.Cell, 0, abs.W)
		for col := 0; col < row.StartFilledCols; col++ {
			cells = append(cells, ui.Cell{Symbol: " "})
		}
		if row.StartCharIdx <= end {
			for _, r := range line[row.StartCharIdx:end] {
				cells = append(cells, ui.Cell{Symbol: string(r)})
			}
		}
		for col := 0; col < row.EndFilledCols; col++ {
			cells = append(cells, ui.Cell{Symbol: " "})
		}
		f.SetCellsAt(abs.X, abs.Y+row.RowIdx, cells)
	}
}

// Editor is the top-level wiring: a widget tree of window splits, a
// buffer manager, and the scripting bridge's view into "the active
// window" for its cursor/buffer host calls.
type Editor struct {
	Tree *ui.Tree

	windows map[ui.WidgetID]*state.Window
	active  ui.WidgetID

	width, height int
	opt           ui.Options
}

// New creates an Editor with an empty root split sized width x height.
func New(width, height int, opt ui.Options) *Editor {
	return &Editor{
		Tree:    ui.NewTree(ui.Rect{X: 0, Y: 0, W: width, H: height}),
		windows: make(map[ui.WidgetID]*state.Window),
		width:   width,
		height:  height,
		opt:     opt,
	}
}

// OpenBuffer creates a window over a new buffer holding content, as a
// full-bound child of the root, and makes it active.
func (e *Editor) OpenBuffer(content string) ui.WidgetID {
	rope := buf.NewSliceRope(content, "\n")
	b := buf.NewBuffer(rope)
	win := state.NewWindow(b, e.width, e.height, e.opt)

	id := e.Tree.Insert(e.Tree.Root(), ui.Rect{X: 0, Y: 0, W: e.width, H: e.height}, 0, &WindowNode{Win: win})
	e.windows[id] = win
	e.active = id
	return id
}

// ActiveWindow returns the window the scripting bridge's host API and
// the normal-mode FSM operate on.
func (e *Editor) ActiveWindow() *state.Window {
	return e.windows[e.active]
}

// SetActiveWindow changes which window subsequent host calls and key
// events target.
func (e *Editor) SetActiveWindow(id ui.WidgetID) bool {
	if _, ok := e.windows[id]; !ok {
		return false
	}
	e.active = id
	return true
}

// SplitWindow implements the host API's window-split operation: it
// halves the active window's rectangle either vertically (side-by-
// side) or horizontally (stacked), shrinks the existing window into
// one half, and inserts a new window sharing the same buffer into the
// other half.
func (e *Editor) SplitWindow(vertical bool) (ui.WidgetID, bool) {
	activeWin, ok := e.windows[e.active]
	if !ok {
		return ui.NoWidget, false
	}
	rel, ok := e.Tree.RelativeShape(e.active)
	if !ok {
		return ui.NoWidget, false
	}
	parent, ok := e.Tree.Parent(e.active)
	if !ok {
		parent = e.Tree.Root()
	}

	firstHalf, secondHalf := splitRect(rel, vertical)
	e.Tree.SetRelativeShape(e.active, firstHalf)
	activeWin.Width, activeWin.Height = firstHalf.W, firstHalf.H

	newWin := state.NewWindow(activeWin.Buf, secondHalf.W, secondHalf.H, e.opt)
	id := e.Tree.Insert(parent, secondHalf, 0, &WindowNode{Win: newWin})
	e.windows[id] = newWin
	e.active = id
	return id, true
}

func splitRect(r ui.Rect, vertical bool) (first, second ui.Rect) {
	if vertical {
		leftW := r.W / 2
		return ui.Rect{X: r.X, Y: r.Y, W: leftW, H: r.H},
			ui.Rect{X: r.X + leftW, Y: r.Y, W: r.W - leftW, H: r.H}
	}
	topH := r.H / 2
	return ui.Rect{X: r.X, Y: r.Y, W: r.W, H: topH},
		ui.Rect{X: r.X, Y: r.Y + topH, W: r.W, H: r.H - topH}
}

// CloseWindow removes a window from the tree; the buffer it displayed
// is left alone (buffers outlive the windows that display them).
func (e *Editor) CloseWindow(id ui.WidgetID) {
	e.Tree.Remove(id)
	delete(e.windows, id)
	if e.active == id {
		for other := range e.windows {
			e.active = other
			break
		}
	}
}

// ResolveConfigHome resolves the platform config-home directory the
// editor reads startup configuration from, using os.UserConfigDir's
// cross-platform XDG/AppData/Library resolution.
func ResolveConfigHome() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", NewBuiltinInitError("cannot resolve config-home directory: %v", err)
	}
	return filepath.Join(base, "rsvim"), nil
}
