package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is wrapped by the panic raised when a handle refers to a
	// removed or never-inserted entry.
	ErrStaleHandle = errors.New("physics: stale body handle")
	// ErrSelfPair is wrapped by the panic raised when both sides of a pair
	// refer to the same entry.
	ErrSelfPair = errors.New("physics: body paired with itself")
)

// Handle identifies a pool entry. A handle goes stale when its entry is
// removed, even if the slot is later reused.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.generation)
}

// Entry is everything the pipeline stores per body.
type Entry struct {
	Body      Body
	Shape     Shape
	Transform Transform
	LocalAABB AABB
	WorldAABB AABB
}

type slot struct {
	entry      Entry
	generation uint32
	alive      bool
}

// Pool is an arena of bodies addressed by generation-checked handles.
type Pool struct {
	slots []slot
	free  []uint32
	count int
}

func NewPool() *Pool {
	return &Pool{}
}

// Insert attaches shape to body, caches the local AABB and world caches,
// and returns the new entry's handle.
func (p *Pool) Insert(body Body, shape Shape, t Transform) Handle {
	t = t.normalized()
	body.Attach(shape)
	body.Refresh(t)

	local := shape.LocalAABB()
	e := Entry{
		Body:      body,
		Shape:     shape,
		Transform: t,
		LocalAABB: local,
		WorldAABB: local.Translate(t.Translation),
	}

	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot{})
	}

	s := &p.slots[idx]
	s.entry = e
	s.alive = true
	p.count++
	return Handle{index: idx, generation: s.generation}
}

// Remove detaches the entry. It returns false if h was already stale.
func (p *Pool) Remove(h Handle) bool {
	if !p.Contains(h) {
		return false
	}
	s := &p.slots[h.index]
	s.entry = Entry{}
	s.alive = false
	s.generation++
	p.free = append(p.free, h.index)
	p.count--
	return true
}

// Contains reports whether h still refers to a live entry.
func (p *Pool) Contains(h Handle) bool {
	if int(h.index) >= len(p.slots) {
		return false
	}
	s := &p.slots[h.index]
	return s.alive && s.generation == h.generation
}

func (p *Pool) Len() int {
	return p.count
}

// Get returns the entry for h. It panics if h is stale.
func (p *Pool) Get(h Handle) *Entry {
	if !p.Contains(h) {
		panic(fmt.Errorf("%w: %v", ErrStaleHandle, h))
	}
	return &p.slots[h.index].entry
}

// Pair returns two distinct entries for mutation. It panics on a self-pair or
// a stale handle.
func (p *Pool) Pair(a, b Handle) (*Entry, *Entry) {
	if a.index == b.index {
		panic(fmt.Errorf("%w: %v and %v", ErrSelfPair, a, b))
	}
	return p.Get(a), p.Get(b)
}

// Each calls fn for every live entry in slot order.
func (p *Pool) Each(fn func(h Handle, e *Entry)) {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.alive {
			continue
		}
		fn(Handle{index: uint32(i), generation: s.generation}, &s.entry)
	}
}

// Handles returns the live handles in slot order.
func (p *Pool) Handles() []Handle {
	out := make([]Handle, 0, p.count)
	p.Each(func(h Handle, _ *Entry) {
		out = append(out, h)
	})
	return out
}

// Clear removes every entry. Outstanding handles become stale.
func (p *Pool) Clear() {
	for _, h := range p.Handles() {
		p.Remove(h)
	}
}
