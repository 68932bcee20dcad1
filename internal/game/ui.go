package game

import (
	"fmt"

	"impulse3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel layout
const (
	panelWidth  = 220
	panelHeight = 250
	panelMargin = 10
	rowHeight   = 26
)

// Color palette - dark with indigo accent
var (
	colorBgDark        = rl.NewColor(18, 18, 24, 240)
	colorBgElement     = rl.NewColor(32, 32, 42, 255)
	colorBgHover       = rl.NewColor(45, 45, 60, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(235, 235, 245, 255)
	colorTextSecondary = rl.NewColor(160, 160, 180, 255)
)

// initRayguiStyle sets up the dark theme
func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func panelBounds() rl.Rectangle {
	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	return rl.Rectangle{X: x, Y: panelMargin, Width: panelWidth, Height: panelHeight}
}

func mouseOverPanel() bool {
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), panelBounds())
}

// drawPanel draws the physics controls and applies their changes.
func (g *Game) drawPanel() {
	bounds := panelBounds()
	rl.DrawRectangleRec(bounds, colorBgDark)
	rl.DrawRectangleLinesEx(bounds, 1, colorAccent)
	rl.DrawText("Physics", int32(bounds.X)+10, int32(bounds.Y)+8, 18, colorTextPrimary)

	x := bounds.X + 10
	y := bounds.Y + 36
	box := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}
		y += rowHeight
		return r
	}

	g.Config.Enabled = gui.CheckBox(box(), "Enabled", g.Config.Enabled)

	dynamic := g.Config.Detection == physics.DetectDynamic
	if gui.CheckBox(box(), "Continuous detection", dynamic) != dynamic {
		g.toggleDetection()
	}

	g.Config.Debug = gui.CheckBox(box(), "Debug report", g.Config.Debug)
	g.ShowAABBs = gui.CheckBox(box(), "Show bounds", g.ShowAABBs)
	g.ShowContacts = gui.CheckBox(box(), "Show contacts", g.ShowContacts)

	sliderBounds := rl.Rectangle{X: x + 70, Y: y, Width: bounds.Width - 120, Height: 18}
	rl.DrawText("Time", int32(x), int32(y)+2, 15, colorTextSecondary)
	g.TimeScale = gui.Slider(sliderBounds, "", fmt.Sprintf("%.2fx", g.TimeScale), g.TimeScale, 0.05, 2)
	y += rowHeight + 6

	half := (bounds.Width - 30) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Reset") {
		if err := g.Reset(); err != nil {
			g.setStatus(err.Error())
		}
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Snapshot") {
		g.saveSnapshot()
	}
}
