package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// finite reports whether every component of v is a real number.
func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// normalizeOrZero returns v scaled to unit length, or the zero vector when v
// has no usable direction.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	n, ok := tryNormalize(v)
	if !ok {
		return mgl32.Vec3{}
	}
	return n
}

// tryNormalize normalizes v and reports whether the result is a finite,
// non-zero direction.
func tryNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}, false
	}
	n := v.Mul(1 / l)
	return n, finite(n)
}

// rotationMatrix returns the 3x3 rotation matrix for q.
func rotationMatrix(q mgl32.Quat) mgl32.Mat3 {
	return q.Normalize().Mat4().Mat3()
}

// toWorldTensor rotates a body-space tensor into world space: R·T·Rᵗ.
func toWorldTensor(q mgl32.Quat, t mgl32.Mat3) mgl32.Mat3 {
	r := rotationMatrix(q)
	return r.Mul3(t).Mul3(r.Transpose())
}
