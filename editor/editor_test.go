package editor

import (
	"testing"

	"github.com/rsvim/rsvim-go/ui"
	"github.com/stretchr/testify/assert"
)

func newTestEditor() *Editor {
	return New(80, 24, ui.Options{Wrap: true})
}

func TestOpenBufferCreatesActiveWindowFillingRoot(t *testing.T) {
	e := newTestEditor()
	id := e.OpenBuffer("hello\nworld\n")

	win := e.ActiveWindow()
	assert.NotNil(t, win)
	assert.Equal(t, 80, win.Width)
	assert.Equal(t, 24, win.Height)

	abs, ok := e.Tree.AbsoluteShape(id)
	assert.True(t, ok)
	assert.Equal(t, ui.Rect{X: 0, Y: 0, W: 80, H: 24}, abs)
}

func TestSplitWindowVerticalHalvesWidth(t *testing.T) {
	e := newTestEditor()
	firstID := e.OpenBuffer("hello\n")

	newID, ok := e.SplitWindow(true)
	assert.True(t, ok)
	assert.NotEqual(t, firstID, newID)

	firstAbs, _ := e.Tree.AbsoluteShape(firstID)
	secondAbs, _ := e.Tree.AbsoluteShape(newID)

	assert.Equal(t, 40, firstAbs.W)
	assert.Equal(t, 40, secondAbs.W)
	assert.Equal(t, 24, firstAbs.H)
	assert.Equal(t, 24, secondAbs.H)

	assert.Same(t, e.windows[newID], e.ActiveWindow())
}

func TestSplitWindowHorizontalHalvesHeight(t *testing.T) {
	e := newTestEditor()
	e.OpenBuffer("hello\n")

	newID, ok := e.SplitWindow(false)
	assert.True(t, ok)

	secondAbs, _ := e.Tree.AbsoluteShape(newID)
	assert.Equal(t, 80, secondAbs.W)
	assert.Equal(t, 12, secondAbs.H)
}

func TestSplitWindowSharesUnderlyingBuffer(t *testing.T) {
	e := newTestEditor()
	firstID := e.OpenBuffer("shared content\n")
	newID, ok := e.SplitWindow(true)
	assert.True(t, ok)

	assert.Same(t, e.windows[firstID].Buf, e.windows[newID].Buf)
}

func TestCloseWindowRemovesFromTreeAndSwitchesActive(t *testing.T) {
	e := newTestEditor()
	firstID := e.OpenBuffer("hello\n")
	newID, ok := e.SplitWindow(true)
	assert.True(t, ok)

	parent, _ := e.Tree.Parent(newID)
	e.CloseWindow(newID)

	assert.Same(t, e.windows[firstID], e.ActiveWindow())
	assert.NotContains(t, e.Tree.Children(parent), newID)
}

func TestSetActiveWindowRejectsUnknownID(t *testing.T) {
	e := newTestEditor()
	e.OpenBuffer("hello\n")
	assert.False(t, e.SetActiveWindow(ui.WidgetID(9999)))
}
