package physics

import (
	"cmp"
	"slices"
)

// BroadPair is an unordered candidate pair. Each pair is emitted at most once
// per frame and A != B.
type BroadPair struct {
	A, B Handle
}

// Bounds is a body's world AABB tagged with its handle.
type Bounds struct {
	Handle Handle
	AABB   AABB
}

// SweepAndPrune sorts boxes along X and sweeps forward from each box until
// the next box starts past its max X. Buffers are reused between calls.
type SweepAndPrune struct {
	bounds []Bounds
	pairs  []BroadPair
}

func NewSweepAndPrune(capacity int) *SweepAndPrune {
	return &SweepAndPrune{
		bounds: make([]Bounds, 0, capacity),
		pairs:  make([]BroadPair, 0, capacity),
	}
}

// Collect gathers the world AABB of every live body in pool.
func (s *SweepAndPrune) Collect(pool *Pool) []Bounds {
	s.bounds = s.bounds[:0]
	pool.Each(func(h Handle, e *Entry) {
		s.bounds = append(s.bounds, Bounds{Handle: h, AABB: e.WorldAABB})
	})
	return s.bounds
}

// FindPairs sorts bounds in place and returns the overlapping pairs. The
// returned slice is reused on the next call.
func (s *SweepAndPrune) FindPairs(bounds []Bounds) []BroadPair {
	s.pairs = s.pairs[:0]

	slices.SortFunc(bounds, func(a, b Bounds) int {
		return cmp.Compare(a.AABB.Min.X(), b.AABB.Min.X())
	})

	for i := range bounds {
		a := &bounds[i]
		for j := i + 1; j < len(bounds); j++ {
			b := &bounds[j]
			if b.AABB.Min.X() > a.AABB.Max.X() {
				break
			}
			if a.AABB.Overlaps(b.AABB) {
				s.pairs = append(s.pairs, BroadPair{A: a.Handle, B: b.Handle})
			}
		}
	}
	return s.pairs
}

// Update runs Collect and FindPairs over pool.
func (s *SweepAndPrune) Update(pool *Pool) []BroadPair {
	return s.FindPairs(s.Collect(pool))
}

// BruteForcePairs tests every pair of bounds. It is the O(n²) reference for
// the sweep.
func BruteForcePairs(bounds []Bounds) []BroadPair {
	var pairs []BroadPair
	for i := range bounds {
		for j := i + 1; j < len(bounds); j++ {
			if bounds[i].AABB.Overlaps(bounds[j].AABB) {
				pairs = append(pairs, BroadPair{A: bounds[i].Handle, B: bounds[j].Handle})
			}
		}
	}
	return pairs
}
