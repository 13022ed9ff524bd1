package jsrt

import (
	"errors"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
)

func TestGraphRecordCreatesFetchingStatus(t *testing.T) {
	g := NewGraph()
	r := g.Record("/a.js")
	assert.Equal(t, Fetching, r.status)
}

func TestGraphAdvanceInstantiatesWhenRootIsReady(t *testing.T) {
	g := NewGraph()
	r := g.Record("/a.js")
	r.status = Ready
	g.MarkRoot("/a.js")

	var instantiated bool
	g.Advance(func(rec *moduleRecord) (goja.Value, error) {
		instantiated = true
		assert.Equal(t, "/a.js", rec.path)
		return goja.Undefined(), nil
	})

	assert.True(t, instantiated)
	assert.False(t, g.Pending())
}

func TestGraphAdvanceWaitsForDependenciesNotYetReady(t *testing.T) {
	g := NewGraph()
	root := g.Record("/root.js")
	root.status = Ready
	root.deps = []string{"/dep.js"}
	dep := g.Record("/dep.js")
	dep.status = Fetched
	g.MarkRoot("/root.js")

	called := false
	g.Advance(func(rec *moduleRecord) (goja.Value, error) {
		called = true
		return goja.Undefined(), nil
	})

	assert.False(t, called)
	assert.True(t, g.Pending())

	dep.status = Ready
	g.Advance(func(rec *moduleRecord) (goja.Value, error) {
		called = true
		return goja.Undefined(), nil
	})
	assert.True(t, called)
	assert.False(t, g.Pending())
}

func TestGraphAdvanceRejectsDynamicImportOnErroredDescendant(t *testing.T) {
	g := NewGraph()
	root := g.Record("/root.js")
	root.status = Ready
	root.deps = []string{"/broken.js"}
	broken := g.Record("/broken.js")
	broken.status = Errored
	broken.err = errors.New("parse error")
	g.MarkRoot("/root.js")

	var rejected error
	g.QueueDynamicImport("/root.js", func(goja.Value) {}, func(err error) { rejected = err })

	g.Advance(func(rec *moduleRecord) (goja.Value, error) {
		t.Fatal("should not instantiate a graph with an errored descendant")
		return goja.Undefined(), nil
	})

	assert.Error(t, rejected)
	assert.False(t, g.Pending())
}

func TestGraphAdvanceResolvesDynamicImportOnSuccess(t *testing.T) {
	g := NewGraph()
	root := g.Record("/root.js")
	root.status = Ready
	g.MarkRoot("/root.js")

	var resolved goja.Value
	g.QueueDynamicImport("/root.js", func(v goja.Value) { resolved = v }, func(error) {})

	vm := goja.New()
	expected := vm.ToValue("namespace")
	g.Advance(func(rec *moduleRecord) (goja.Value, error) { return expected, nil })

	assert.Equal(t, expected, resolved)
}

func TestGraphInstantiateErrorMarksRootErrored(t *testing.T) {
	g := NewGraph()
	root := g.Record("/root.js")
	root.status = Ready
	g.MarkRoot("/root.js")

	g.Advance(func(rec *moduleRecord) (goja.Value, error) {
		return goja.Undefined(), errors.New("eval failed")
	})

	assert.Equal(t, Errored, root.status)
	assert.False(t, g.Pending())
}
