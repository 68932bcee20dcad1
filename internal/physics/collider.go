package physics

import "github.com/go-gl/mathgl/mgl32"

// ShapeType tags the variant held by a Shape.
type ShapeType int

const (
	ShapeSphere ShapeType = iota
)

func (t ShapeType) String() string {
	switch t {
	case ShapeSphere:
		return "sphere"
	}
	return "unknown"
}

// Sphere is a ball centred on the body origin.
type Sphere struct {
	Radius float32
}

// Shape is a closed set of collider variants. Exactly the field matching
// Type is meaningful; narrowphase switches on the pair of types.
type Shape struct {
	Type   ShapeType
	Sphere Sphere
}

func NewSphere(radius float32) Shape {
	return Shape{Type: ShapeSphere, Sphere: Sphere{Radius: radius}}
}

// CenterOfMass is the shape's center of mass in collider-local space.
func (s Shape) CenterOfMass() mgl32.Vec3 {
	switch s.Type {
	case ShapeSphere:
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{}
}

// InertiaTensor returns the per-unit-mass inertia tensor. The sphere uses
// 2/5·r² on the diagonal with no mass factor; Attach scales the inverse by
// the inverse mass.
func (s Shape) InertiaTensor() mgl32.Mat3 {
	switch s.Type {
	case ShapeSphere:
		d := 2.0 / 5.0 * s.Sphere.Radius * s.Sphere.Radius
		return mgl32.Diag3(mgl32.Vec3{d, d, d})
	}
	return mgl32.Ident3()
}

func (s Shape) LocalAABB() AABB {
	switch s.Type {
	case ShapeSphere:
		d := 2 * s.Sphere.Radius
		return NewAABBFromCenter(mgl32.Vec3{}, mgl32.Vec3{d, d, d})
	}
	return AABB{}
}
