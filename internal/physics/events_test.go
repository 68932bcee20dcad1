package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[int]
	sum := 0
	e.AddListener(func(v int) { sum += v })
	e.AddListener(func(v int) { sum += 10 * v })
	e.AddListener(nil)

	assert.Equal(t, 2, e.GetListenerCount())
	e.Invoke(2)
	assert.Equal(t, 22, sum)

	e.RemoveAllListeners()
	e.Invoke(5)
	assert.Equal(t, 22, sum)
}

func TestCollisionTracker(t *testing.T) {
	a, b, c := Handle{index: 0}, Handle{index: 1}, Handle{index: 2}
	tracker := newCollisionTracker()

	var enter, exit EventWithArg[CollisionPair]
	var entered, exited []CollisionPair
	enter.AddListener(func(p CollisionPair) { entered = append(entered, p) })
	exit.AddListener(func(p CollisionPair) { exited = append(exited, p) })

	tracker.update([]Contact{{A: b, B: a}, {A: c, B: a}, {A: a, B: b}}, &enter, &exit)
	assert.Equal(t, []CollisionPair{{A: a, B: b}, {A: a, B: c}}, entered)
	assert.Empty(t, exited)

	entered = nil
	tracker.update([]Contact{{A: a, B: c}}, &enter, &exit)
	assert.Empty(t, entered, "still touching")
	assert.Equal(t, []CollisionPair{{A: a, B: b}}, exited)

	exited = nil
	tracker.update(nil, &enter, &exit)
	assert.Equal(t, []CollisionPair{{A: a, B: c}}, exited)
}

func TestReportString(t *testing.T) {
	r := Report{Bodies: 3, BroadContacts: 2, NarrowContacts: 1}
	assert.Equal(t, "3 bodies, 2 broad, 1 narrow in 0s", r.String())
}
