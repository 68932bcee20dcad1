package physics

import "github.com/go-gl/mathgl/mgl32"

// Transform is a body's world pose. Scale is not modelled.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

func NewTransform(translation mgl32.Vec3) Transform {
	return Transform{Translation: translation, Rotation: mgl32.QuatIdent()}
}

// normalized replaces a zero quaternion with identity so zero-value
// transforms are usable.
func (t Transform) normalized() Transform {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl32.Vec3{}) {
		t.Rotation = mgl32.QuatIdent()
	}
	return t
}
