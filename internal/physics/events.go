package physics

import (
	"cmp"
	"slices"
)

// EventWithArg is a multi-cast event with one argument.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// CollisionPair is a contacting pair with the lower slot index first.
type CollisionPair struct {
	A, B Handle
}

func makePair(a, b Handle) CollisionPair {
	if a.index > b.index {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

func comparePairs(x, y CollisionPair) int {
	if c := cmp.Compare(x.A.index, y.A.index); c != 0 {
		return c
	}
	return cmp.Compare(x.B.index, y.B.index)
}

// collisionTracker turns per-frame contacts into enter and exit edges.
type collisionTracker struct {
	active  map[CollisionPair]bool // pairs touching last frame
	current map[CollisionPair]bool // pairs touching this frame
	exited  []CollisionPair
}

func newCollisionTracker() *collisionTracker {
	return &collisionTracker{
		active:  make(map[CollisionPair]bool),
		current: make(map[CollisionPair]bool),
	}
}

// update records contacts and fires enter for new pairs in contact order and
// exit for vanished pairs in slot order.
func (t *collisionTracker) update(contacts []Contact, enter, exit *EventWithArg[CollisionPair]) {
	clear(t.current)
	for _, c := range contacts {
		pair := makePair(c.A, c.B)
		if t.current[pair] {
			continue
		}
		t.current[pair] = true
		if !t.active[pair] {
			enter.Invoke(pair)
		}
	}

	t.exited = t.exited[:0]
	for pair := range t.active {
		if !t.current[pair] {
			t.exited = append(t.exited, pair)
		}
	}
	slices.SortFunc(t.exited, comparePairs)
	for _, pair := range t.exited {
		exit.Invoke(pair)
	}

	// Swap buffers
	t.active, t.current = t.current, t.active
}

// forget drops pairs that reference a removed body without firing exit.
func (t *collisionTracker) forget(h Handle) {
	for pair := range t.active {
		if pair.A == h || pair.B == h {
			delete(t.active, pair)
		}
	}
}
