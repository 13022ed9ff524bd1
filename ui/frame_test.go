package ui

import "testing"

func TestFrameSetGetCell(t *testing.T) {
	f := NewFrame(10, 5)
	f.SetCell(0, 0, Cell{Symbol: "a", Style: Style{Bold: true}})

	c := f.GetCell(0, 0)
	if c.Symbol != "a" || !c.Style.Bold {
		t.Fatalf("set/get mismatch: %+v", c)
	}
}

func TestFrameOutOfBoundsTryVariants(t *testing.T) {
	f := NewFrame(4, 4)
	if _, ok := f.TrySetCell(10, 10, Cell{Symbol: "x"}); ok {
		t.Fatalf("expected out-of-bounds TrySetCell to fail")
	}
	if _, ok := f.TryGetCell(-1, 0); ok {
		t.Fatalf("expected out-of-bounds TryGetCell to fail")
	}
}

func TestFramePosIdxInverses(t *testing.T) {
	f := NewFrame(7, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			idx := f.pos2idx(x, y)
			gx, gy := f.idx2pos(idx)
			if gx != x || gy != y {
				t.Fatalf("pos2idx/idx2pos not inverse at (%d,%d): got (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestFrameDirtyRows(t *testing.T) {
	f := NewFrame(5, 5)
	f.SetCell(0, 2, Cell{Symbol: "x"})
	f.SetCell(3, 4, Cell{Symbol: "y"})

	dirty := f.DirtyRows()
	want := map[int]bool{2: true, 4: true}
	if len(dirty) != 2 {
		t.Fatalf("expected 2 dirty rows, got %v", dirty)
	}
	for _, r := range dirty {
		if !want[r] {
			t.Fatalf("unexpected dirty row %d", r)
		}
	}

	f.ResetDirtyRows()
	if len(f.DirtyRows()) != 0 {
		t.Fatalf("expected no dirty rows after reset")
	}
}

func TestFrameSetCellsAtClipsAtRightEdge(t *testing.T) {
	f := NewFrame(3, 1)
	cells := []Cell{{Symbol: "a"}, {Symbol: "b"}, {Symbol: "c"}, {Symbol: "d"}}
	olds := f.SetCellsAt(1, 0, cells)

	if len(olds) != 2 {
		t.Fatalf("expected write to clip to 2 cells, got %d", len(olds))
	}
	if f.GetCell(1, 0).Symbol != "a" || f.GetCell(2, 0).Symbol != "b" {
		t.Fatalf("cells not written in order")
	}
}

func TestFrameSetSizeMarksAllDirty(t *testing.T) {
	f := NewFrame(4, 4)
	f.ResetDirtyRows()
	f.SetSize(6, 2)

	if f.Width() != 6 || f.Height() != 2 {
		t.Fatalf("resize did not apply: %dx%d", f.Width(), f.Height())
	}
	if len(f.DirtyRows()) != 2 {
		t.Fatalf("expected every row dirty after resize")
	}
}
