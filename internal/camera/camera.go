package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Right mouse drag orbits, the wheel
// zooms and WASD pans the target on the ground plane.
type OrbitCamera struct {
	Target    rl.Vector3
	Yaw       float32 // degrees
	Pitch     float32 // degrees
	Distance  float32
	LookSpeed float32
	ZoomSpeed float32
	PanSpeed  float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:    target,
		Yaw:       -135.0,
		Pitch:     25.0,
		Distance:  distance,
		LookSpeed: 0.25,
		ZoomSpeed: 1.0,
		PanSpeed:  8.0, // units per second
	}
}

func (c *OrbitCamera) Update(deltaTime float32) {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		mouseDelta := rl.GetMouseDelta()
		c.Yaw += mouseDelta.X * c.LookSpeed
		c.Pitch += mouseDelta.Y * c.LookSpeed
	}

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	c.Distance -= rl.GetMouseWheelMove() * c.ZoomSpeed
	if c.Distance < 1 {
		c.Distance = 1
	}

	forward, right := c.getDirections()
	var moveDir rl.Vector3
	if rl.IsKeyDown(rl.KeyW) {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		moveDir = rl.Vector3Add(moveDir, right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}

	// Normalize diagonal movement so you don't go faster diagonally
	if rl.Vector3Length(moveDir) > 0 {
		moveDir = rl.Vector3Normalize(moveDir)
		c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(moveDir, c.PanSpeed*deltaTime))
	}
}

// getDirections returns the horizontal view direction and its right vector.
func (c *OrbitCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(-math.Cos(yawRad)),
		Z: float32(-math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

// Position is the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(d*math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Target.Y + float32(d*math.Sin(pitchRad)),
		Z: c.Target.Z + float32(d*math.Sin(yawRad)*math.Cos(pitchRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
