package ui

// Paintable is implemented by a widget tree node's value to paint
// itself into a Frame at its absolute rectangle. Widgets with a nil or
// non-Paintable value are walked (their children still render) but
// paint nothing themselves.
type Paintable interface {
	Paint(f *Frame, abs Rect)
}

// Render walks tr in pre-order ascending z-index so a higher z-index
// overpaints a lower one, paints every Paintable value into f, and
// returns the dirty row set, resetting it in the same call so the
// caller always sees exactly the rows that changed since the last
// Render.
func Render(tr *Tree, f *Frame) []int {
	tr.Walk(true, func(id WidgetID) {
		abs, ok := tr.AbsoluteShape(id)
		if !ok || abs.W <= 0 || abs.H <= 0 {
			return
		}
		v, ok := tr.Value(id)
		if !ok {
			return
		}
		if p, ok := v.(Paintable); ok {
			p.Paint(f, abs)
		}
	})
	dirty := f.DirtyRows()
	f.ResetDirtyRows()
	return dirty
}
