package jsrt

import (
	"fmt"

	"github.com/dop251/goja"
)

// ModuleStatus is a module record's lifecycle stage.
type ModuleStatus int

const (
	Fetching ModuleStatus = iota
	Fetched
	Instantiated
	Ready
	Errored
)

func (s ModuleStatus) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Fetched:
		return "fetched"
	case Instantiated:
		return "instantiated"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// moduleRecord is one node of the module graph, keyed by absolute
// path.
type moduleRecord struct {
	path    string
	status  ModuleStatus
	deps    []string
	source  string
	program *goja.Program
	err     error
}

// dynamicImport is a pending dynamic-import promise tied to a root
// graph; it settles once the root graph finishes loading.
type dynamicImport struct {
	rootPath string
	resolve  func(ns goja.Value)
	reject   func(err error)
}

// Graph owns the seen/pending module-graph collections. One Graph
// instance is shared by all roots imported by a runtime.
type Graph struct {
	seen    map[string]*moduleRecord
	pending map[string]struct{} // root path -> present while loading
	imports []*dynamicImport
}

// NewGraph creates an empty module graph.
func NewGraph() *Graph {
	return &Graph{
		seen:    make(map[string]*moduleRecord),
		pending: make(map[string]struct{}),
	}
}

// Record returns the record for path, creating a Fetching one if
// absent.
func (g *Graph) Record(path string) *moduleRecord {
	if r, ok := g.seen[path]; ok {
		return r
	}
	r := &moduleRecord{path: path, status: Fetching}
	g.seen[path] = r
	return r
}

// MarkRoot registers path as a root still loading.
func (g *Graph) MarkRoot(path string) {
	g.pending[path] = struct{}{}
}

// QueueDynamicImport registers a pending dynamic-import promise
// against rootPath; it settles when that root's graph finishes.
func (g *Graph) QueueDynamicImport(rootPath string, resolve func(goja.Value), reject func(error)) {
	g.imports = append(g.imports, &dynamicImport{rootPath: rootPath, resolve: resolve, reject: reject})
}

// transitivelyReady reports whether path and every transitive
// dependency reachable from it is Ready.
func (g *Graph) transitivelyReady(path string, visiting map[string]bool) bool {
	r, ok := g.seen[path]
	if !ok {
		return false
	}
	if r.status == Errored {
		return false
	}
	if r.status != Ready {
		return false
	}
	if visiting[path] {
		return true // cycle: already being checked higher in the stack
	}
	visiting[path] = true
	for _, dep := range r.deps {
		if !g.transitivelyReady(dep, visiting) {
			return false
		}
	}
	return true
}

// hasErroredDescendant reports whether path or any transitive
// dependency is Errored.
func (g *Graph) hasErroredDescendant(path string, visiting map[string]bool) bool {
	r, ok := g.seen[path]
	if !ok {
		return false
	}
	if r.status == Errored {
		return true
	}
	if visiting[path] {
		return false
	}
	visiting[path] = true
	for _, dep := range r.deps {
		if g.hasErroredDescendant(dep, visiting) {
			return true
		}
	}
	return false
}

// Advance runs one module-graph settlement pass: for each pending
// root, reject its dynamic-import promise if a descendant errored, or
// instantiate + evaluate it if every transitively-seen module is
// Ready. instantiate is called with the root's record; Advance then
// marks the root Ready, or Errored if instantiate returned an error.
// Finished roots are removed from pending.
func (g *Graph) Advance(instantiate func(r *moduleRecord) (namespace goja.Value, err error)) {
	for root := range g.pending {
		if g.hasErroredDescendant(root, map[string]bool{}) {
			err := g.seen[root].err
			if err == nil {
				err = fmt.Errorf("module %s: a dependency failed to load", root)
			}
			g.rejectImportsFor(root, err)
			delete(g.pending, root)
			continue
		}
		if !g.transitivelyReady(root, map[string]bool{}) {
			continue
		}
		r := g.seen[root]
		ns, err := instantiate(r)
		if err != nil {
			r.status = Errored
			r.err = err
			g.rejectImportsFor(root, err)
		} else {
			r.status = Ready
			g.resolveImportsFor(root, ns)
		}
		delete(g.pending, root)
	}
}

func (g *Graph) rejectImportsFor(root string, err error) {
	kept := g.imports[:0]
	for _, imp := range g.imports {
		if imp.rootPath == root {
			imp.reject(err)
			continue
		}
		kept = append(kept, imp)
	}
	g.imports = kept
}

func (g *Graph) resolveImportsFor(root string, ns goja.Value) {
	kept := g.imports[:0]
	for _, imp := range g.imports {
		if imp.rootPath == root {
			imp.resolve(ns)
			continue
		}
		kept = append(kept, imp)
	}
	g.imports = kept
}

// Pending reports whether any root is still loading.
func (g *Graph) Pending() bool {
	return len(g.pending) > 0
}
