package physics

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is what one Step produced. Pairs and Contacts are in pipeline order
// and are only valid until the next Step.
type Frame struct {
	Pairs    []BroadPair
	Contacts []Contact
	Report   Report
}

// World owns the body pool and runs the per-frame pipeline over it. The pool
// must not be mutated concurrently with Step.
type World struct {
	Bodies *Pool
	Logger *log.Logger

	OnCollisionEnter EventWithArg[CollisionPair]
	OnCollisionExit  EventWithArg[CollisionPair]

	sap      *SweepAndPrune
	contacts []Contact
	tracker  *collisionTracker

	lastLoggedCount int       // prevents duplicate logs at same body count
	lastLogTime     time.Time // rate-limit report logs
}

func NewWorld() *World {
	return &World{
		Bodies:          NewPool(),
		Logger:          log.Default(),
		sap:             NewSweepAndPrune(64),
		tracker:         newCollisionTracker(),
		lastLoggedCount: -1,
	}
}

// Add inserts a body with its collider at pose t.
func (w *World) Add(body Body, shape Shape, t Transform) Handle {
	return w.Bodies.Insert(body, shape, t)
}

// Remove detaches a body. Pairs it was part of end without an exit event.
func (w *World) Remove(h Handle) bool {
	if !w.Bodies.Remove(h) {
		return false
	}
	w.tracker.forget(h)
	return true
}

// Reset removes every body and forgets collision state.
func (w *World) Reset() {
	w.Bodies.Clear()
	clear(w.tracker.active)
}

// Step runs one frame: refresh, then, if enabled, forces, broad-phase,
// narrow-phase, resolve and integrate, strictly in that order.
func (w *World) Step(dt float32, cfg Config) Frame {
	start := time.Now()

	// 0. Refresh world-space caches and bounds
	w.refresh()

	if !cfg.Enabled {
		return Frame{Report: Report{Time: time.Since(start), Bodies: w.Bodies.Len()}}
	}

	// 1. Apply forces
	w.applyGravity(cfg.Gravity, dt)

	// 2. Broad-phase
	pairs := w.sap.Update(w.Bodies)

	// 3. Narrow-phase
	w.contacts = Narrowphase(w.Bodies, pairs, cfg.Detection, dt, w.contacts[:0])

	// 4. Resolve
	Resolve(w.Bodies, w.contacts)

	// 5. Integrate
	w.integrate(dt)

	w.tracker.update(w.contacts, &w.OnCollisionEnter, &w.OnCollisionExit)

	frame := Frame{
		Pairs:    pairs,
		Contacts: w.contacts,
		Report: Report{
			Time:           time.Since(start),
			Bodies:         w.Bodies.Len(),
			BroadContacts:  len(pairs),
			NarrowContacts: len(w.contacts),
		},
	}
	if cfg.Debug {
		w.logReport(frame.Report)
	}
	return frame
}

func (w *World) refresh() {
	w.Bodies.Each(func(_ Handle, e *Entry) {
		e.Body.Refresh(e.Transform)
		e.WorldAABB = e.LocalAABB.Translate(e.Transform.Translation)
	})
}

// applyGravity adds gravity·mass·dt to every dynamic body.
func (w *World) applyGravity(gravity mgl32.Vec3, dt float32) {
	w.Bodies.Each(func(_ Handle, e *Entry) {
		if e.Body.IsStatic() {
			return
		}
		mass := 1 / e.Body.InvMass
		e.Body.ApplyImpulseLinear(gravity.Mul(mass * dt))
	})
}

func (w *World) integrate(dt float32) {
	w.Bodies.Each(func(_ Handle, e *Entry) {
		e.Body.Integrate(&e.Transform, dt)
	})
}

func (w *World) logReport(r Report) {
	if w.Logger == nil {
		return
	}
	if r.Bodies != w.lastLoggedCount {
		w.lastLoggedCount = r.Bodies
		w.Logger.Printf("Physics: %d bodies", r.Bodies)
	}
	if r.NarrowContacts > 0 && time.Since(w.lastLogTime) >= time.Second {
		w.lastLogTime = time.Now()
		w.Logger.Printf("Physics: %s", r)
	}
}
