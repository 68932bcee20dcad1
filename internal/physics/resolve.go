package physics

// ResolveContact applies the normal and friction impulses for c and, for
// contacts that were already overlapping, pushes the bodies apart.
// Pairs made of two static bodies are left untouched.
func ResolveContact(a, b *Entry, c Contact) {
	ba, bb := &a.Body, &b.Body
	totalInvMass := ba.InvMass + bb.InvMass
	if totalInvMass == 0 {
		return
	}

	elasticity := ba.Elasticity * bb.Elasticity
	friction := ba.Friction * bb.Friction

	n := c.Normal
	ra := c.WorldPointA.Sub(ba.CenterOfMassWorld)
	rb := c.WorldPointB.Sub(bb.CenterOfMassWorld)

	angularA := ba.InverseInertiaTensorWorld.Mul3x1(ra.Cross(n)).Cross(ra)
	angularB := bb.InverseInertiaTensorWorld.Mul3x1(rb.Cross(n)).Cross(rb)
	angularFactor := angularA.Add(angularB).Dot(n)

	velA := ba.LinearVelocity.Add(ba.AngularVelocity.Cross(ra))
	velB := bb.LinearVelocity.Add(bb.AngularVelocity.Cross(rb))
	vab := velA.Sub(velB)

	// 1. Normal impulse
	j := -(1 + elasticity) * vab.Dot(n) / (totalInvMass + angularFactor)
	impulse := n.Mul(j)
	ba.ApplyImpulse(c.WorldPointA, impulse)
	bb.ApplyImpulse(c.WorldPointB, impulse.Mul(-1))

	// 2. Friction along the tangential relative velocity
	velNormal := n.Mul(n.Dot(vab))
	velTangent := vab.Sub(velNormal)
	if tangent, ok := tryNormalize(velTangent); ok {
		inertiaA := ba.InverseInertiaTensorWorld.Mul3x1(ra.Cross(tangent)).Cross(ra)
		inertiaB := bb.InverseInertiaTensorWorld.Mul3x1(rb.Cross(tangent)).Cross(rb)
		invInertia := inertiaA.Add(inertiaB).Dot(tangent)

		reducedMass := 1 / (totalInvMass + invInertia)
		frictionImpulse := velTangent.Mul(reducedMass * friction)
		if finite(frictionImpulse) {
			ba.ApplyImpulse(c.WorldPointA, frictionImpulse.Mul(-1))
			bb.ApplyImpulse(c.WorldPointB, frictionImpulse)
		}
	}

	// 3. Positional correction, only for contacts found already overlapping
	if c.TimeOfImpact == 0 {
		d := c.WorldPointB.Sub(c.WorldPointA)
		a.Transform.Translation = a.Transform.Translation.Add(d.Mul(ba.InvMass / totalInvMass))
		b.Transform.Translation = b.Transform.Translation.Sub(d.Mul(bb.InvMass / totalInvMass))
	}
}

// Resolve handles contacts one at a time in the order given.
func Resolve(pool *Pool, contacts []Contact) {
	for _, c := range contacts {
		a, b := pool.Pair(c.A, c.B)
		ResolveContact(a, b, c)
	}
}
