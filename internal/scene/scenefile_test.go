package scene

import (
	"os"
	"path/filepath"
	"testing"

	"impulse3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonScene = `{
  "name": "pair",
  "physics": {"mode": "static", "debug": false, "gravity": [0, -9.5, 0]},
  "objects": [
    {"name": "Ball", "color": "Red", "position": [0, 2, 0], "velocity": [1, 0, 0],
     "mass": 2, "elasticity": 0.25, "collider": {"type": "sphere", "radius": 0.5}},
    {"name": "Floor", "position": [0, -10, 0], "static": true,
     "collider": {"type": "sphere", "radius": 10}}
  ]
}`

const yamlScene = `
name: pair
physics:
  mode: static
  debug: false
  gravity: [0, -9.5, 0]
objects:
  - name: Ball
    color: Red
    position: [0, 2, 0]
    velocity: [1, 0, 0]
    mass: 2
    elasticity: 0.25
    collider: {type: sphere, radius: 0.5}
  - name: Floor
    position: [0, -10, 0]
    static: true
    collider: {type: sphere, radius: 10}
`

const tomlScene = `
name = "pair"

[physics]
mode = "static"
debug = false
gravity = [0.0, -9.5, 0.0]

[[objects]]
name = "Ball"
color = "Red"
position = [0.0, 2.0, 0.0]
velocity = [1.0, 0.0, 0.0]
mass = 2.0
elasticity = 0.25
collider = { type = "sphere", radius = 0.5 }

[[objects]]
name = "Floor"
position = [0.0, -10.0, 0.0]
static = true
collider = { type = "sphere", radius = 10.0 }
`

func TestDecodeFormats(t *testing.T) {
	inputs := map[Format]string{
		FormatJSON: jsonScene,
		FormatYAML: yamlScene,
		FormatTOML: tomlScene,
	}
	for format, src := range inputs {
		t.Run(format.String(), func(t *testing.T) {
			f, err := Decode([]byte(src), format)
			require.NoError(t, err)

			assert.Equal(t, "pair", f.Name)
			require.Len(t, f.Objects, 2)

			ball := f.Objects[0]
			assert.Equal(t, "Ball", ball.Name)
			assert.Equal(t, [3]float32{0, 2, 0}, ball.Position)
			assert.Equal(t, float32(2), ball.Mass)
			require.NotNil(t, ball.Elasticity)
			assert.Equal(t, float32(0.25), *ball.Elasticity)
			assert.Nil(t, ball.Friction)
			assert.Equal(t, ColliderDef{Type: "sphere", Radius: 0.5}, ball.Collider)

			assert.True(t, f.Objects[1].Static)

			cfg := f.Config(physics.DefaultConfig())
			assert.True(t, cfg.Enabled)
			assert.False(t, cfg.Debug)
			assert.Equal(t, physics.DetectStatic, cfg.Detection)
			assert.Equal(t, mgl32.Vec3{0, -9.5, 0}, cfg.Gravity)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json": FormatJSON, "b.yaml": FormatYAML, "c.YML": FormatYAML, "d.toml": FormatTOML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("scene.xml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	neg := float32(-1)
	big := float32(1.5)
	tests := []struct {
		name string
		obj  ObjectDef
	}{
		{"missing collider", ObjectDef{Mass: 1}},
		{"box collider", ObjectDef{Mass: 1, Collider: ColliderDef{Type: "box", Radius: 1}}},
		{"zero radius", ObjectDef{Mass: 1, Collider: ColliderDef{Type: "sphere"}}},
		{"dynamic without mass", ObjectDef{Collider: ColliderDef{Type: "sphere", Radius: 1}}},
		{"negative friction", ObjectDef{Mass: 1, Friction: &neg, Collider: ColliderDef{Type: "sphere", Radius: 1}}},
		{"elasticity above one", ObjectDef{Mass: 1, Elasticity: &big, Collider: ColliderDef{Type: "sphere", Radius: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Objects: []ObjectDef{tt.obj}}
			assert.ErrorIs(t, f.Validate(), ErrInvalidScene)
		})
	}

	f := &File{Physics: PhysicsDef{Mode: "sideways"}}
	err := f.Validate()
	assert.ErrorIs(t, err, ErrInvalidScene)
	assert.ErrorIs(t, err, physics.ErrUnknownDetectionMode)
}

func TestDecodeRejectsInvalidScene(t *testing.T) {
	_, err := Decode([]byte(`{"objects": [{"name": "x", "mass": 1}]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidScene)

	_, err = Decode([]byte(`{"objects": [`), FormatJSON)
	assert.ErrorContains(t, err, "parse scene")
}

func TestSpawn(t *testing.T) {
	f, err := Decode([]byte(yamlScene), FormatYAML)
	require.NoError(t, err)

	w := physics.NewWorld()
	objects, err := f.Spawn(w)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, 2, w.Bodies.Len())

	ball := w.Bodies.Get(objects[0].Handle)
	assert.Equal(t, "Red", objects[0].Color)
	assert.Equal(t, float32(0.5), ball.Body.InvMass)
	assert.Equal(t, float32(0.25), ball.Body.Elasticity)
	assert.Equal(t, float32(0.5), ball.Body.Friction, "default friction")
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, ball.Body.LinearVelocity)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, ball.Transform.Translation)

	floor := w.Bodies.Get(objects[1].Handle)
	assert.True(t, floor.Body.IsStatic())
	assert.Equal(t, float32(1), floor.Body.Elasticity, "default elasticity")
}

func TestSpawnRotation(t *testing.T) {
	f := &File{Objects: []ObjectDef{
		{Name: "euler", Mass: 1, Rotation: [3]float32{0, 0, 90}, Collider: ColliderDef{Type: "sphere", Radius: 1}},
		{Name: "quat", Mass: 1, Orientation: &[4]float32{0, 0, 0, 2}, Collider: ColliderDef{Type: "sphere", Radius: 1}},
	}}
	w := physics.NewWorld()
	objects, err := f.Spawn(w)
	require.NoError(t, err)

	euler := w.Bodies.Get(objects[0].Handle).Transform.Rotation
	got := euler.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-5)
	assert.InDelta(t, 1, got.Y(), 1e-5)

	quat := w.Bodies.Get(objects[1].Handle).Transform.Rotation
	assert.InDelta(t, 1, quat.V.Z(), 1e-6, "normalized")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f, err := Builtin("ball_skid")
	require.NoError(t, err)

	w := physics.NewWorld()
	w.Logger = nil
	objects, err := f.Spawn(w)
	require.NoError(t, err)

	cfg := f.Config(physics.DefaultConfig())
	cfg.Debug = false
	for i := 0; i < 30; i++ {
		w.Step(1.0/60, cfg)
	}
	snap := Snapshot(w, cfg, objects)

	dir := t.TempDir()
	for _, name := range []string{"snap.json", "snap.yaml", "snap.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, snap), name)

		loaded, err := Load(path)
		require.NoError(t, err, name)
		require.Len(t, loaded.Objects, 2, name)

		ball := w.Bodies.Get(objects[0].Handle)
		assert.Equal(t, [3]float32(ball.Transform.Translation), loaded.Objects[0].Position, name)
		assert.Equal(t, [3]float32(ball.Body.LinearVelocity), loaded.Objects[0].Velocity, name)
		assert.True(t, loaded.Objects[1].Static, name)
		assert.Equal(t, physics.DetectDynamic, loaded.Config(physics.Config{}).Detection, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "read scene")
}
