package game

import (
	"fmt"
	"log"
	"time"

	"impulse3d/internal/camera"
	"impulse3d/internal/physics"
	"impulse3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// maxFrameDelta keeps a stalled window from feeding one huge step.
const maxFrameDelta = 0.1

// pushStrength scales the impulse of a left click, per unit of body mass.
const pushStrength = 5.0

// Game hosts a physics world in a raylib window.
type Game struct {
	World   *physics.World
	Config  physics.Config
	Scene   *scene.File
	Objects []scene.Object
	Camera  *camera.OrbitCamera

	SceneName    string
	TimeScale    float32
	ShowAABBs    bool
	ShowContacts bool
	SnapshotPath string

	lastFrame physics.Frame
	status    string
	statusAt  time.Time
	updateMs  float64
	drawMs    float64
}

func New(sceneName string) (*Game, error) {
	g := &Game{
		World:        physics.NewWorld(),
		Camera:       camera.New(rl.Vector3{}, 12),
		SceneName:    sceneName,
		TimeScale:    1,
		ShowContacts: true,
		SnapshotPath: "snapshot.yaml",
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}

	g.World.OnCollisionEnter.AddListener(func(p physics.CollisionPair) {
		if g.Config.Debug {
			log.Printf("Physics: %s hit %s", g.objectName(p.A), g.objectName(p.B))
		}
	})
	return g, nil
}

// Reset reloads the scene and respawns every body.
func (g *Game) Reset() error {
	f, err := scene.Open(g.SceneName)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	g.World.Reset()
	objects, err := f.Spawn(g.World)
	if err != nil {
		return fmt.Errorf("spawn scene: %w", err)
	}

	g.Scene = f
	g.Objects = objects
	g.Config = f.Config(physics.DefaultConfig())
	g.lastFrame = physics.Frame{}
	g.setStatus(fmt.Sprintf("Loaded %s (%d bodies)", f.Name, len(objects)))
	return nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "impulse3d sandbox")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()
	if deltaTime > maxFrameDelta {
		deltaTime = maxFrameDelta
	}

	g.Camera.Update(deltaTime)
	g.handleKeys()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !mouseOverPanel() {
		g.push()
	}

	g.lastFrame = g.World.Step(deltaTime*g.TimeScale, g.Config)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) handleKeys() {
	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		g.Config.Enabled = !g.Config.Enabled
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.toggleDetection()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.ShowAABBs = !g.ShowAABBs
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.ShowContacts = !g.ShowContacts
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.Config.Debug = !g.Config.Debug
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.Reset(); err != nil {
			g.setStatus(err.Error())
		}
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot()
	}
}

func (g *Game) toggleDetection() {
	if g.Config.Detection == physics.DetectStatic {
		g.Config.Detection = physics.DetectDynamic
	} else {
		g.Config.Detection = physics.DetectStatic
	}
	g.setStatus("Detection: " + g.Config.Detection.String())
}

// push casts a ray from the mouse and kicks the first body hit at the hit
// point, which also spins it.
func (g *Game) push() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.Camera.GetRaylibCamera())
	origin := toVec3(ray.Position)
	dir := toVec3(ray.Direction)

	hit, ok := g.World.Raycast(origin, dir, 1000)
	if !ok {
		return
	}
	e := g.World.Bodies.Get(hit.Handle)
	if e.Body.IsStatic() {
		return
	}

	mass := 1 / e.Body.InvMass
	e.Body.Refresh(e.Transform)
	e.Body.ApplyImpulse(hit.Point, dir.Normalize().Mul(pushStrength*mass))
	g.setStatus("Pushed " + g.objectName(hit.Handle))
}

func (g *Game) saveSnapshot() {
	snap := scene.Snapshot(g.World, g.Config, g.Objects)
	snap.Name = g.Scene.Name
	if err := scene.Save(g.SnapshotPath, snap); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.setStatus("Saved " + g.SnapshotPath)
}

func (g *Game) objectName(h physics.Handle) string {
	for _, o := range g.Objects {
		if o.Handle == h {
			return o.Name
		}
	}
	return h.String()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusAt = time.Now()
	log.Println(msg)
}

func toVec3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
