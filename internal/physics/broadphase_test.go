package physics

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairSet(pairs []BroadPair) map[CollisionPair]int {
	set := make(map[CollisionPair]int, len(pairs))
	for _, p := range pairs {
		set[makePair(p.A, p.B)]++
	}
	return set
}

func randomSpherePool(rng *rand.Rand, n int, spread float32) *Pool {
	p := NewPool()
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{
			(rng.Float32() - 0.5) * spread,
			(rng.Float32() - 0.5) * spread,
			(rng.Float32() - 0.5) * spread,
		}
		r := 0.2 + rng.Float32()*0.8
		p.Insert(dynamicBody(1), NewSphere(r), NewTransform(pos))
	}
	return p
}

func TestSweepAndPruneMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sap := NewSweepAndPrune(0)

	for _, n := range []int{0, 1, 2, 10, 100, 400} {
		for _, spread := range []float32{2, 10, 40} {
			p := randomSpherePool(rng, n, spread)

			bounds := sap.Collect(p)
			want := pairSet(BruteForcePairs(append([]Bounds(nil), bounds...)))
			got := sap.FindPairs(bounds)

			assert.Equal(t, want, pairSet(got), "n=%d spread=%v", n, spread)
			for _, pair := range got {
				assert.NotEqual(t, pair.A, pair.B)
			}
		}
	}
}

func TestSweepAndPruneTouchingBoxesDoNotPair(t *testing.T) {
	p := NewPool()
	p.Insert(dynamicBody(1), NewSphere(1), NewTransform(mgl32.Vec3{0, 0, 0}))
	p.Insert(dynamicBody(1), NewSphere(1), NewTransform(mgl32.Vec3{2, 0, 0}))

	pairs := NewSweepAndPrune(2).Update(p)
	assert.Empty(t, pairs)
}

func TestSweepAndPruneEachPairOnce(t *testing.T) {
	p := NewPool()
	for i := 0; i < 5; i++ {
		p.Insert(dynamicBody(1), NewSphere(1), NewTransform(mgl32.Vec3{float32(i) * 0.1, 0, 0}))
	}

	pairs := NewSweepAndPrune(5).Update(p)
	require.Len(t, pairs, 10)
	for pair, count := range pairSet(pairs) {
		assert.Equal(t, 1, count, "pair %v", pair)
	}
}

func TestSweepAndPruneSkipsRemovedBodies(t *testing.T) {
	p := NewPool()
	a := p.Insert(dynamicBody(1), NewSphere(1), Transform{})
	b := p.Insert(dynamicBody(1), NewSphere(1), Transform{})
	c := p.Insert(dynamicBody(1), NewSphere(1), Transform{})
	p.Remove(b)

	pairs := NewSweepAndPrune(3).Update(p)
	require.Len(t, pairs, 1)
	assert.Equal(t, makePair(a, c), makePair(pairs[0].A, pairs[0].B))
}
