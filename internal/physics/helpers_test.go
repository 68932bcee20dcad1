package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

// sphereEntry builds a detached entry with refreshed caches.
func sphereEntry(radius float32, mass Mass, pos mgl32.Vec3) *Entry {
	body := NewBody()
	body.Mass = mass
	shape := NewSphere(radius)
	tr := NewTransform(pos)
	body.Attach(shape)
	body.Refresh(tr)
	local := shape.LocalAABB()
	return &Entry{
		Body:      body,
		Shape:     shape,
		Transform: tr,
		LocalAABB: local,
		WorldAABB: local.Translate(pos),
	}
}

func TestNormalizeOrZero(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, normalizeOrZero(mgl32.Vec3{}))
	assertVec(t, mgl32.Vec3{0, 1, 0}, normalizeOrZero(mgl32.Vec3{0, 5, 0}), 1e-6)

	_, ok := tryNormalize(mgl32.Vec3{})
	assert.False(t, ok)
}
