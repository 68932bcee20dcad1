package game

import (
	"fmt"
	"time"

	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// groundRadius is the size above which a sphere is drawn as wireframe so the
// camera can see the bodies resting on it.
const groundRadius = 50

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func (g *Game) Draw() {
	camera := g.Camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	rl.DrawGrid(40, 1)
	g.drawBodies()
	if g.ShowContacts {
		g.drawContacts()
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) drawBodies() {
	for _, o := range g.Objects {
		if !g.World.Bodies.Contains(o.Handle) {
			continue
		}
		e := g.World.Bodies.Get(o.Handle)
		color := lookupColor(o.Color)
		pos := toVector3(e.Transform.Translation)

		switch e.Shape.Type {
		case physics.ShapeSphere:
			r := e.Shape.Sphere.Radius
			if r > groundRadius {
				rl.DrawSphereWires(pos, r, 64, 64, rl.Fade(color, 0.4))
				continue
			}
			rl.DrawSphere(pos, r, color)
			// Spin marker: the body's local +X axis.
			axis := e.Transform.Rotation.Rotate(mgl32.Vec3{r, 0, 0})
			rl.DrawLine3D(pos, toVector3(e.Transform.Translation.Add(axis)), rl.Black)
		}

		if g.ShowAABBs {
			rl.DrawBoundingBox(rl.BoundingBox{
				Min: toVector3(e.WorldAABB.Min),
				Max: toVector3(e.WorldAABB.Max),
			}, rl.Green)
		}
	}
}

func (g *Game) drawContacts() {
	for _, c := range g.lastFrame.Contacts {
		a := toVector3(c.WorldPointA)
		b := toVector3(c.WorldPointB)
		rl.DrawSphere(a, 0.05, rl.Yellow)
		rl.DrawSphere(b, 0.05, rl.Orange)
		rl.DrawLine3D(b, toVector3(c.WorldPointB.Add(c.Normal.Mul(0.5))), rl.Yellow)
	}
}

func (g *Game) DrawUI() {
	g.drawPanel()

	r := g.lastFrame.Report
	y := int32(10)
	rl.DrawText("Right drag to orbit, wheel to zoom, WASD to pan, click to push", 10, y, 18, rl.LightGray)
	y += 24
	rl.DrawText("P pause  M mode  B bounds  C contacts  R reset  F5 snapshot  F1 debug", 10, y, 18, rl.LightGray)
	y += 30

	state := "running"
	if !g.Config.Enabled {
		state = "paused"
	}
	rl.DrawText(fmt.Sprintf("%s | %s | %s", g.Scene.Name, state, g.Config.Detection), 10, y, 18, rl.RayWhite)
	y += 24

	if g.Config.Debug {
		rl.DrawText(fmt.Sprintf("Bodies:  %d", r.Bodies), 10, y, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Broad:   %d", r.BroadContacts), 10, y+20, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Narrow:  %d", r.NarrowContacts), 10, y+40, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Physics: %.3f ms", float64(r.Time.Microseconds())/1000.0), 10, y+60, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, y+80, 16, rl.Lime)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, y+100, 16, rl.Lime)
	}

	if g.status != "" && time.Since(g.statusAt) < 3*time.Second {
		rl.DrawText(g.status, 10, int32(rl.GetScreenHeight())-30, 18, rl.Yellow)
	}
}
