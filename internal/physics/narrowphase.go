package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// dynamicEpsilon is the relative displacement below which continuous
// detection falls back to an overlap test, and the slack of that test.
const dynamicEpsilon = 0.001

// Contact describes one touching or penetrating pair. Normal points from B
// toward A. SeparationDist is negative when penetrating. TimeOfImpact is 0
// for contacts that already overlap at the start of the frame.
type Contact struct {
	A, B           Handle
	WorldPointA    mgl32.Vec3
	WorldPointB    mgl32.Vec3
	LocalPointA    mgl32.Vec3
	LocalPointB    mgl32.Vec3
	Normal         mgl32.Vec3
	SeparationDist float32
	TimeOfImpact   float32
}

// RaySphereIntersect intersects the ray start + t·dir with a sphere. t is in
// units of dir, so for a displacement ray the hit window is [0, 1].
func RaySphereIntersect(start, dir, center mgl32.Vec3, radius float32) (t1, t2 float32, ok bool) {
	m := center.Sub(start)
	a := dir.Dot(dir)
	b := m.Dot(dir)
	c := m.Dot(m) - radius*radius

	delta := b*b - a*c
	if delta < 0 || a == 0 {
		return 0, 0, false
	}

	sqrt := math32.Sqrt(delta)
	inv := 1 / a
	return (b - sqrt) * inv, (b + sqrt) * inv, true
}

// SphereSphereStatic tests two spheres at their current centers and returns
// the surface point of each sphere along the center axis.
func SphereSphereStatic(ra, rb float32, pa, pb mgl32.Vec3) (ptA, ptB mgl32.Vec3, ok bool) {
	ab := pb.Sub(pa)
	radius := ra + rb
	if ab.LenSqr() >= radius*radius {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	dir := normalizeOrZero(ab)
	return pa.Add(dir.Mul(ra)), pb.Sub(dir.Mul(rb)), true
}

// SphereSphereDynamic finds the earliest time in [0, dt] at which two
// spheres moving with their linear velocities touch. Points are the surface
// points at that time.
func SphereSphereDynamic(ra, rb float32, a, b *Body, dt float32) (ptA, ptB mgl32.Vec3, toi float32, ok bool) {
	posA, posB := a.CenterOfMassWorld, b.CenterOfMassWorld
	ray := a.LinearVelocity.Sub(b.LinearVelocity).Mul(dt)
	radius := ra + rb

	var t0, t1 float32
	if ray.LenSqr() < dynamicEpsilon*dynamicEpsilon {
		slack := radius + dynamicEpsilon
		if posB.Sub(posA).LenSqr() > slack*slack {
			return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
		}
	} else {
		var hit bool
		t0, t1, hit = RaySphereIntersect(posA, ray, posB, radius)
		if !hit {
			return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
		}
	}

	// Ray parameter [0,1] maps onto [0,dt].
	t0 *= dt
	t1 *= dt

	if t1 < 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
	}
	toi = math32.Max(t0, 0)
	if toi > dt {
		return mgl32.Vec3{}, mgl32.Vec3{}, 0, false
	}

	newA := posA.Add(a.LinearVelocity.Mul(toi))
	newB := posB.Add(b.LinearVelocity.Mul(toi))
	dir := normalizeOrZero(newB.Sub(newA))

	return newA.Add(dir.Mul(ra)), newB.Sub(dir.Mul(rb)), toi, true
}

// Collide dispatches on the shape pair. Unhandled combinations produce no
// contact.
func Collide(a, b Handle, ea, eb *Entry, mode DetectionMode, dt float32) (Contact, bool) {
	switch {
	case ea.Shape.Type == ShapeSphere && eb.Shape.Type == ShapeSphere:
		if mode == DetectStatic {
			return sphereSphereStatic(a, b, ea, eb)
		}
		return sphereSphereDynamic(a, b, ea, eb, dt)
	}
	return Contact{}, false
}

func sphereSphereStatic(a, b Handle, ea, eb *Entry) (Contact, bool) {
	ra, rb := ea.Shape.Sphere.Radius, eb.Shape.Sphere.Radius
	pa, pb := ea.Transform.Translation, eb.Transform.Translation

	ptA, ptB, ok := SphereSphereStatic(ra, rb, pa, pb)
	if !ok {
		return Contact{}, false
	}

	ba := pa.Sub(pb)
	return Contact{
		A:              a,
		B:              b,
		WorldPointA:    ptA,
		WorldPointB:    ptB,
		LocalPointA:    ea.Body.WorldToLocal(ea.Transform, ptA),
		LocalPointB:    eb.Body.WorldToLocal(eb.Transform, ptB),
		Normal:         normalizeOrZero(ba),
		SeparationDist: ba.Len() - (ra + rb),
	}, true
}

func sphereSphereDynamic(a, b Handle, ea, eb *Entry, dt float32) (Contact, bool) {
	ra, rb := ea.Shape.Sphere.Radius, eb.Shape.Sphere.Radius

	ptA, ptB, toi, ok := SphereSphereDynamic(ra, rb, &ea.Body, &eb.Body, dt)
	if !ok {
		return Contact{}, false
	}

	// Probe the poses at the time of impact on copies so the pool is never
	// advanced.
	bodyA, poseA := ea.Body, ea.Transform
	bodyB, poseB := eb.Body, eb.Transform
	bodyA.Integrate(&poseA, toi)
	bodyB.Integrate(&poseB, toi)

	ba := ea.Transform.Translation.Sub(eb.Transform.Translation)
	return Contact{
		A:              a,
		B:              b,
		WorldPointA:    ptA,
		WorldPointB:    ptB,
		LocalPointA:    bodyA.WorldToLocal(poseA, ptA),
		LocalPointB:    bodyB.WorldToLocal(poseB, ptB),
		Normal:         normalizeOrZero(ba),
		SeparationDist: ba.Len() - (ra + rb),
		TimeOfImpact:   toi,
	}, true
}

// Narrowphase tests every broad pair and appends the resulting contacts to
// out in pair order.
func Narrowphase(pool *Pool, pairs []BroadPair, mode DetectionMode, dt float32, out []Contact) []Contact {
	for _, pair := range pairs {
		ea, eb := pool.Pair(pair.A, pair.B)
		if c, ok := Collide(pair.A, pair.B, ea, eb, mode, dt); ok {
			out = append(out, c)
		}
	}
	return out
}
