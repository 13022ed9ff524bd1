// Package reactive is a small dependency-tracked signal/effect core used
// to back buffer-local options: writing an option notifies every
// subscribed effect synchronously, so a buffer can drop its column
// indexes without every call site remembering to do so by hand.
package reactive

import "sync"

// getter is implemented by Signal and Computed.
type getter interface {
	peek() interface{}
}

// dependency is anything an effect/computed can subscribe to.
type dependency interface {
	subscribe(s subscriber)
	unsubscribe(s subscriber)
}

// subscriber is anything that depends on a dependency.
type subscriber interface {
	onDependencyUpdated()
	addDependency(d dependency)
}

var (
	activeMu         sync.Mutex
	activeSubscriber subscriber

	batchMu    sync.Mutex
	batchDepth int
	batchQueue map[subscriber]struct{}
)

// Batch coalesces updates raised while fn runs: subscribers are notified
// at most once, after the outermost Batch returns.
func Batch(fn func()) {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()

	defer func() {
		batchMu.Lock()
		batchDepth--
		if batchDepth == 0 && len(batchQueue) > 0 {
			queue := batchQueue
			batchQueue = nil
			batchMu.Unlock()
			for sub := range queue {
				sub.onDependencyUpdated()
			}
			return
		}
		batchMu.Unlock()
	}()

	fn()
}

// Signal is a reactive value of comparable type T. Set is a no-op when
// the new value equals the old one, matching Vim's option semantics where
// re-setting an option to its current value never re-triggers listeners.
type Signal[T comparable] struct {
	mu          sync.RWMutex
	value       T
	subscribers map[subscriber]struct{}
}

// New creates a Signal seeded with val.
func New[T comparable](val T) *Signal[T] {
	return &Signal[T]{value: val, subscribers: make(map[subscriber]struct{})}
}

func (s *Signal[T]) subscribe(sub subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[sub] = struct{}{}
}

func (s *Signal[T]) unsubscribe(sub subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, sub)
}

func (s *Signal[T]) peek() interface{} { return s.Peek() }

// Get reads the current value, tracking the read if called from inside
// an Effect or Computed.
func (s *Signal[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(s)
		s.subscribe(current)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek reads the current value without tracking it as a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set writes a new value, synchronously notifying subscribers (unless
// inside a Batch) when the value actually changed.
func (s *Signal[T]) Set(val T) {
	s.mu.Lock()
	if s.value == val {
		s.mu.Unlock()
		return
	}
	s.value = val

	subs := make([]subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// Computed is a derived, memoized value recomputed lazily the next time
// it is read after one of its dependencies changed.
type Computed[T comparable] struct {
	mu           sync.Mutex
	fn           func() T
	value        T
	dirty        bool
	dependencies map[dependency]struct{}
	subscribers  map[subscriber]struct{}
}

// NewComputed derives a value from fn, which must only read other
// Signal/Computed values reachable from this goroutine.
func NewComputed[T comparable](fn func() T) *Computed[T] {
	return &Computed[T]{
		fn:           fn,
		dirty:        true,
		dependencies: make(map[dependency]struct{}),
		subscribers:  make(map[subscriber]struct{}),
	}
}

func (c *Computed[T]) subscribe(sub subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers[sub] = struct{}{}
}

func (c *Computed[T]) unsubscribe(sub subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribers, sub)
}

func (c *Computed[T]) addDependency(d dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependencies[d] = struct{}{}
}

func (c *Computed[T]) peek() interface{} { return c.Get() }

func (c *Computed[T]) onDependencyUpdated() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	subs := make([]subscriber, 0, len(c.subscribers))
	for sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// Get returns the memoized value, recomputing it first if dirty.
func (c *Computed[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(c)
		c.subscribe(current)
	}

	c.mu.Lock()
	if c.dirty {
		for dep := range c.dependencies {
			dep.unsubscribe(c)
		}
		c.dependencies = make(map[dependency]struct{})

		activeMu.Lock()
		prev := activeSubscriber
		activeSubscriber = c
		activeMu.Unlock()

		c.mu.Unlock()
		val := c.fn()
		c.mu.Lock()

		c.value = val
		c.dirty = false

		activeMu.Lock()
		activeSubscriber = prev
		activeMu.Unlock()
	}
	defer c.mu.Unlock()
	return c.value
}

// Effect re-runs fn once immediately and again every time a Signal or
// Computed read during the last run changes.
type Effect struct {
	mu           sync.Mutex
	fn           func()
	dependencies map[dependency]struct{}
	disposed     bool
}

// NewEffect creates and immediately runs an effect.
func NewEffect(fn func()) *Effect {
	e := &Effect{fn: fn, dependencies: make(map[dependency]struct{})}
	e.Run()
	return e
}

func (e *Effect) addDependency(d dependency) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dependencies[d] = struct{}{}
}

func (e *Effect) onDependencyUpdated() {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[subscriber]struct{})
		}
		batchQueue[e] = struct{}{}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()

	e.Run()
}

// Run re-executes the effect body, resubscribing to whatever signals it
// reads this time around.
func (e *Effect) Run() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	oldDeps := e.dependencies
	e.dependencies = make(map[dependency]struct{})
	e.mu.Unlock()

	for dep := range oldDeps {
		dep.unsubscribe(e)
	}

	activeMu.Lock()
	prev := activeSubscriber
	activeSubscriber = e
	activeMu.Unlock()

	e.fn()

	activeMu.Lock()
	activeSubscriber = prev
	activeMu.Unlock()
}

// Dispose detaches the effect from all of its dependencies; it will not
// run again.
func (e *Effect) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	for dep := range e.dependencies {
		dep.unsubscribe(e)
	}
	e.dependencies = nil
}
