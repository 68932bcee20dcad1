package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxAngularVelocity caps |ω| after every angular impulse.
const MaxAngularVelocity = 30.0

// MassKind distinguishes immovable bodies from bodies with a finite mass.
type MassKind int

const (
	MassStatic MassKind = iota
	MassValue
)

type Mass struct {
	Kind  MassKind
	Value float32 // kilograms, only read when Kind == MassValue
}

// Static is an immovable, infinitely heavy mass.
func Static() Mass { return Mass{Kind: MassStatic} }

func Kilograms(m float32) Mass { return Mass{Kind: MassValue, Value: m} }

// Inverse returns 0 for static bodies and 1/m otherwise.
func (m Mass) Inverse() float32 {
	if m.Kind == MassStatic || m.Value <= 0 {
		return 0
	}
	return 1 / m.Value
}

func (m Mass) String() string {
	if m.Kind == MassStatic {
		return "static"
	}
	return fmt.Sprintf("%gkg", m.Value)
}

type Body struct {
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Elasticity      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32
	Mass            Mass

	// Derived once by Attach.
	InvMass                   float32
	CenterOfMass              mgl32.Vec3
	InertiaTensor             mgl32.Mat3
	InverseInertiaTensorLocal mgl32.Mat3

	// Cached every frame by Refresh.
	CenterOfMassWorld         mgl32.Vec3
	InverseInertiaTensorWorld mgl32.Mat3
}

// NewBody returns a static body with elasticity 1 and friction 0.5.
func NewBody() Body {
	return Body{
		Elasticity:    1.0,
		Friction:      0.5,
		Mass:          Static(),
		InertiaTensor: mgl32.Ident3(),
	}
}

// IsStatic reports whether impulses are ignored by this body.
func (b *Body) IsStatic() bool {
	return b.InvMass == 0
}

// Attach derives mass properties from the collider. The local inverse tensor
// has the inverse mass baked in, so static bodies get a zero tensor.
func (b *Body) Attach(shape Shape) {
	b.InvMass = b.Mass.Inverse()
	b.CenterOfMass = shape.CenterOfMass()
	b.InertiaTensor = shape.InertiaTensor()
	b.InverseInertiaTensorLocal = b.InertiaTensor.Inv().Mul(b.InvMass)
}

// Refresh recomputes the world-space caches for the current pose.
func (b *Body) Refresh(t Transform) {
	b.CenterOfMassWorld = b.CenterOfMassAt(t)
	b.InverseInertiaTensorWorld = toWorldTensor(t.Rotation, b.InverseInertiaTensorLocal)
}

// CenterOfMassAt returns the world center of mass for pose t without
// touching the cache.
func (b *Body) CenterOfMassAt(t Transform) mgl32.Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(b.CenterOfMass))
}

// WorldToLocal maps a world point into the body frame at pose t, relative to
// the center of mass.
func (b *Body) WorldToLocal(t Transform, p mgl32.Vec3) mgl32.Vec3 {
	rel := p.Sub(b.CenterOfMassAt(t))
	return t.Rotation.Normalize().Conjugate().Rotate(rel)
}

func (b *Body) ApplyImpulseLinear(impulse mgl32.Vec3) {
	if b.InvMass == 0 {
		return
	}
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Mul(b.InvMass))
}

func (b *Body) ApplyImpulseAngular(impulse mgl32.Vec3) {
	if b.InvMass == 0 {
		return
	}
	b.AngularVelocity = b.AngularVelocity.Add(b.InverseInertiaTensorWorld.Mul3x1(impulse))

	if b.AngularVelocity.LenSqr() > MaxAngularVelocity*MaxAngularVelocity {
		b.AngularVelocity = b.AngularVelocity.Normalize().Mul(MaxAngularVelocity)
	}
}

// ApplyImpulse applies impulse at a world point, splitting it into a linear
// part and the torque about the center of mass.
func (b *Body) ApplyImpulse(point, impulse mgl32.Vec3) {
	if b.InvMass == 0 {
		return
	}
	b.ApplyImpulseLinear(impulse)

	r := point.Sub(b.CenterOfMassWorld)
	b.ApplyImpulseAngular(r.Cross(impulse))
}

// Integrate advances t by dt. Rotation happens about the center of mass, so
// the translation is re-derived from the rotated offset.
func (b *Body) Integrate(t *Transform, dt float32) {
	t.Translation = t.Translation.Add(b.LinearVelocity.Mul(dt))

	com := b.CenterOfMassAt(*t)
	comToPosition := t.Translation.Sub(com)

	// Free precession: α = I⁻¹(ω × Iω)
	r := rotationMatrix(t.Rotation)
	inertia := r.Mul3(b.InertiaTensor).Mul3(r.Transpose())
	alpha := inertia.Inv().Mul3x1(b.AngularVelocity.Cross(inertia.Mul3x1(b.AngularVelocity)))
	b.AngularVelocity = b.AngularVelocity.Add(alpha.Mul(dt))

	dAngle := b.AngularVelocity.Mul(dt)
	dq := incrementalRotation(dAngle)

	t.Rotation = dq.Mul(t.Rotation).Normalize()
	t.Translation = com.Add(dq.Rotate(comToPosition))
}

// incrementalRotation turns a rotation vector into a quaternion, falling back
// to identity when the angle is zero or the axis is not finite.
func incrementalRotation(dAngle mgl32.Vec3) mgl32.Quat {
	angle := dAngle.Len()
	inv := 1 / angle
	if math32.IsInf(inv, 0) || math32.IsNaN(inv) {
		return mgl32.QuatIdent()
	}
	axis := dAngle.Mul(inv)
	if !finite(axis) {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, axis)
}
