package ui

import "sort"

// WidgetID identifies a node in a Tree. The zero value is never a valid
// id; NoWidget is the explicit "no node" sentinel.
type WidgetID int

// NoWidget is the sentinel returned where no widget id applies (the
// root's parent, a lookup miss).
const NoWidget WidgetID = 0

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// clip intersects r with bound. If they don't overlap, the result has
// zero width and/or height, positioned at the larger of the two X and
// Y origins.
func (r Rect) clip(bound Rect) Rect {
	x0 := max(r.X, bound.X)
	y0 := max(r.Y, bound.Y)
	x1 := min(r.X+r.W, bound.X+bound.W)
	y1 := min(r.Y+r.H, bound.Y+bound.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// node is one arena slot. Children are kept sorted by (ZIndex,
// insertion order) so iteration is stable.
type node struct {
	id           WidgetID
	parent       WidgetID
	children     []WidgetID
	zIndex       int
	depth        int
	relative     Rect
	absolute     Rect
	insertSeq    int
	value        interface{}
	detached     bool // true once removed, false again on reinsertion
}

// Tree is an arena-backed widget tree: integer ids instead of raw
// pointers, parent→id and id→children maps instead of an intrusive
// linked list, so a node can be detached and later reattached without
// its subtree being destroyed.
type Tree struct {
	nodes   map[WidgetID]*node
	nextID  WidgetID
	seq     int
	root    WidgetID
}

// NewTree creates a tree with a root node covering bound, id NoWidget+1.
func NewTree(bound Rect) *Tree {
	t := &Tree{nodes: make(map[WidgetID]*node), nextID: NoWidget}
	root := t.allocate()
	root.parent = NoWidget
	root.relative = bound
	root.absolute = bound
	root.depth = 0
	t.root = root.id
	return t
}

func (t *Tree) allocate() *node {
	t.nextID++
	n := &node{id: t.nextID}
	t.nodes[n.id] = n
	return n
}

// Root returns the immortal root widget's id.
func (t *Tree) Root() WidgetID { return t.root }

// Insert creates a new widget under parent with relative rectangle rel
// and z-index z, and returns its id. The child's absolute rectangle is
// computed by clipping rel (offset by the parent's absolute origin)
// against the parent's absolute rectangle. Returns NoWidget if parent
// does not exist.
func (t *Tree) Insert(parent WidgetID, rel Rect, z int, value interface{}) WidgetID {
	p, ok := t.nodes[parent]
	if !ok {
		return NoWidget
	}
	n := t.allocate()
	n.parent = parent
	n.relative = rel
	n.zIndex = z
	n.depth = p.depth + 1
	n.value = value
	t.seq++
	n.insertSeq = t.seq

	p.children = insertSorted(p.children, t.nodes, n.id)
	t.recomputeAbsolute(n.id)
	return n.id
}

func insertSorted(children []WidgetID, nodes map[WidgetID]*node, id WidgetID) []WidgetID {
	n := nodes[id]
	i := sort.Search(len(children), func(i int) bool {
		c := nodes[children[i]]
		if c.zIndex != n.zIndex {
			return c.zIndex > n.zIndex
		}
		return c.insertSeq > n.insertSeq
	})
	children = append(children, NoWidget)
	copy(children[i+1:], children[i:])
	children[i] = id
	return children
}

// recomputeAbsolute derives a node's absolute rectangle from its
// parent's and propagates the change to every descendant.
func (t *Tree) recomputeAbsolute(id WidgetID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	var parentAbs Rect
	if p, ok := t.nodes[n.parent]; ok {
		parentAbs = p.absolute
	} else {
		parentAbs = n.relative
	}
	offset := Rect{
		X: parentAbs.X + n.relative.X,
		Y: parentAbs.Y + n.relative.Y,
		W: n.relative.W,
		H: n.relative.H,
	}
	n.absolute = offset.clip(parentAbs)

	for _, c := range n.children {
		t.recomputeAbsolute(c)
	}
}

// Remove detaches id from its parent's children list but keeps the
// node and its subtree intact in the arena, so a later Reinsert is
// meaningful. Removing the root is a no-op.
func (t *Tree) Remove(id WidgetID) {
	if id == t.root {
		return
	}
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if p, ok := t.nodes[n.parent]; ok {
		p.children = removeID(p.children, id)
	}
	n.detached = true
}

func removeID(ids []WidgetID, target WidgetID) []WidgetID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Reinsert reattaches a previously Removed node under parent, recomputing
// its position in the z-order and its absolute rectangle.
func (t *Tree) Reinsert(id, parent WidgetID) bool {
	n, ok := t.nodes[id]
	if !ok || id == t.root {
		return false
	}
	p, ok := t.nodes[parent]
	if !ok {
		return false
	}
	n.parent = parent
	n.depth = p.depth + 1
	n.detached = false
	p.children = insertSorted(p.children, t.nodes, id)
	t.recomputeAbsolute(id)
	return true
}

// Children returns id's children in ascending z-order (ties by
// insertion order).
func (t *Tree) Children(id WidgetID) []WidgetID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := make([]WidgetID, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns id's parent, or (NoWidget, false) for the root or an
// unknown id.
func (t *Tree) Parent(id WidgetID) (WidgetID, bool) {
	n, ok := t.nodes[id]
	if !ok || id == t.root {
		return NoWidget, false
	}
	return n.parent, true
}

// AbsoluteShape returns id's absolute rectangle.
func (t *Tree) AbsoluteShape(id WidgetID) (Rect, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Rect{}, false
	}
	return n.absolute, true
}

// RelativeShape returns id's rectangle relative to its parent.
func (t *Tree) RelativeShape(id WidgetID) (Rect, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Rect{}, false
	}
	return n.relative, true
}

// SetRelativeShape updates id's rectangle and recomputes its and its
// descendants' absolute rectangles.
func (t *Tree) SetRelativeShape(id WidgetID, rel Rect) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.relative = rel
	t.recomputeAbsolute(id)
	return true
}

// Value returns the user value stored at id.
func (t *Tree) Value(id WidgetID) (interface{}, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n.value, true
}

// Depth returns id's depth, the root being depth 0.
func (t *Tree) Depth(id WidgetID) int {
	if n, ok := t.nodes[id]; ok {
		return n.depth
	}
	return -1
}

// Walk visits the tree in pre-order. ascending selects ascending
// z-index at each level (used for rendering, so higher z-index
// overpaints lower); false visits descending.
func (t *Tree) Walk(ascending bool, visit func(id WidgetID)) {
	t.walk(t.root, ascending, visit)
}

func (t *Tree) walk(id WidgetID, ascending bool, visit func(id WidgetID)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	visit(id)
	children := n.children
	if !ascending {
		children = reversed(children)
	}
	for _, c := range children {
		t.walk(c, ascending, visit)
	}
}

func reversed(ids []WidgetID) []WidgetID {
	out := make([]WidgetID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
