package scene

import (
	"testing"

	"impulse3d/internal/physics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"ball_skid", "newtons_cradle", "stack"}, BuiltinNames())
}

func TestBuiltinScenesLoad(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			f, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, f.Name)

			w := physics.NewWorld()
			objects, err := f.Spawn(w)
			require.NoError(t, err)
			assert.Len(t, objects, len(f.Objects))
		})
	}

	_, err := Builtin("nope")
	assert.Error(t, err)
}

func TestBallSkidMatchesReferenceSetup(t *testing.T) {
	f, err := Open("ball_skid")
	require.NoError(t, err)

	ball := f.Objects[0]
	assert.Equal(t, [3]float32{0, 0.5, 0}, ball.Position)
	assert.Equal(t, [3]float32{10, 0, 0}, ball.Velocity)
	assert.Equal(t, float32(0.1), ball.Mass)
	assert.Equal(t, float32(0), *ball.Elasticity)
	assert.Equal(t, float32(0.01), *ball.Friction)

	ground := f.Objects[1]
	assert.True(t, ground.Static)
	assert.Equal(t, float32(1000), ground.Collider.Radius)
}

func TestNewtonsCradleTransfersMomentum(t *testing.T) {
	f, err := Builtin("newtons_cradle")
	require.NoError(t, err)

	w := physics.NewWorld()
	w.Logger = nil
	objects, err := f.Spawn(w)
	require.NoError(t, err)

	cfg := f.Config(physics.DefaultConfig())
	cfg.Debug = false
	for i := 0; i < 120; i++ {
		w.Step(1.0/60, cfg)
	}

	striker := w.Bodies.Get(objects[0].Handle).Body.LinearVelocity
	last := w.Bodies.Get(objects[len(objects)-1].Handle).Body.LinearVelocity
	assert.Less(t, striker.X(), float32(1))
	assert.Greater(t, last.X(), float32(1))
}

func TestRainIsDeterministic(t *testing.T) {
	a := Rain(50, 20, 9)
	b := Rain(50, 20, 9)
	require.Len(t, a.Objects, 51)
	assert.Equal(t, a.Objects[10].Position, b.Objects[10].Position)
	assert.NoError(t, a.Validate())

	c := Rain(50, 20, 10)
	assert.NotEqual(t, a.Objects[10].Position, c.Objects[10].Position)
}
