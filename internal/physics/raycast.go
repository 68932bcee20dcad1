package physics

import "github.com/go-gl/mathgl/mgl32"

type RaycastHit struct {
	Handle   Handle
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast returns the closest body hit by the ray within maxDistance.
func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	dir, ok := tryNormalize(direction)
	if !ok {
		return RaycastHit{}, false
	}

	closest := RaycastHit{Distance: maxDistance}
	hit := false
	w.Bodies.Each(func(h Handle, e *Entry) {
		if e.Shape.Type != ShapeSphere {
			return
		}
		center := e.Body.CenterOfMassAt(e.Transform)
		if info, ok := raycastSphere(origin, dir, center, e.Shape.Sphere.Radius, maxDistance); ok {
			if info.Distance < closest.Distance {
				closest = info
				closest.Handle = h
				hit = true
			}
		}
	})
	return closest, hit
}

func raycastSphere(origin, dir, center mgl32.Vec3, radius, maxDistance float32) (RaycastHit, bool) {
	t1, t2, ok := RaySphereIntersect(origin, dir, center, radius)
	if !ok {
		return RaycastHit{}, false
	}

	t := t1
	if t < 0 {
		t = t2
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(dir.Mul(t))
	normal := normalizeOrZero(point.Sub(center))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
