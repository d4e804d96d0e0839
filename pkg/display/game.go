// Package display is the windowed frontend: it steps the world once per
// ebiten tick and draws every body as a sprite rotated to its heading.
package display

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/ui"
)

var (
	repulsionColor   = color.RGBA{R: 255, G: 80, B: 80, A: 90}
	orientationColor = color.RGBA{R: 80, G: 200, B: 120, A: 60}
	attractionColor  = color.RGBA{R: 80, G: 140, B: 255, A: 40}
)

// Game implements ebiten.Game on top of a running simulation.World.
type Game struct {
	ctx      context.Context
	world    *simulation.World
	cfg      *simulation.Config
	snapshot *behavior.Snapshot
	sprite   *ebiten.Image
	quit     bool

	// UI Controls
	panel      *ui.UIPanel
	widgetZone *ui.Checkbox
	widgetHUD  *ui.Checkbox

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame builds the frontend around a running world.
func NewGame(ctx context.Context, world *simulation.World, cfg *simulation.Config) *Game {
	g := &Game{
		ctx:      ctx,
		world:    world,
		cfg:      cfg,
		snapshot: world.Snapshot(),
		sprite:   birdSprite(),
	}

	g.panel = ui.NewUIPanel(10, 10, 190, 150, "Display")
	g.panel.AddSection("Overlays")
	g.widgetZone = g.panel.AddCheckbox("Interaction zones", cfg.ShowZones)
	g.widgetHUD = g.panel.AddCheckbox("Frame stats", cfg.ShowHUD)
	g.panel.EndSection()
	g.panel.AddSection("Simulation")
	g.panel.AddButton("Quit", func() { g.quit = true })
	g.panel.EndSection()
	return g
}

// Update polls quit, then advances the flock by exactly one step.
func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if g.quitRequested() {
		return ebiten.Termination
	}

	snap, err := g.world.Step(g.ctx)
	if err != nil {
		return err
	}
	g.snapshot = snap
	return nil
}

func (g *Game) quitRequested() bool {
	return g.quit ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if g.snapshot != nil {
		if g.widgetZone.Value {
			for i := range g.snapshot.Bodies {
				g.drawZones(screen, &g.snapshot.Bodies[i])
			}
		}
		for i := range g.snapshot.Bodies {
			g.drawBody(screen, &g.snapshot.Bodies[i])
		}
	}

	g.panel.Draw(screen)

	if g.widgetHUD.Value {
		g.drawHUD(screen)
	}
}

// drawBody draws the sprite centered on the body. The sprite faces up, so a
// quarter turn aligns its nose with heading 0.
func (g *Game) drawBody(screen *ebiten.Image, b *behavior.Body) {
	op := &ebiten.DrawImageOptions{}
	w, h := g.sprite.Bounds().Dx(), g.sprite.Bounds().Dy()
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)

	scale := 2 * g.cfg.BodyRadius / float64(max(w, h))
	if scale > 0 {
		op.GeoM.Scale(scale, scale)
	}
	op.GeoM.Rotate(geometry.DegToRad(b.Heading) + math.Pi/2)
	op.GeoM.Translate(b.Pos.X, b.Pos.Y)

	screen.DrawImage(g.sprite, op)
}

func (g *Game) drawZones(screen *ebiten.Image, b *behavior.Body) {
	x, y := float32(b.Pos.X), float32(b.Pos.Y)
	vector.StrokeCircle(screen, x, y, float32(g.cfg.AttractionRadius), 1, attractionColor, true)
	vector.StrokeCircle(screen, x, y, float32(g.cfg.OrientationRadius), 1, orientationColor, true)
	vector.StrokeCircle(screen, x, y, float32(g.cfg.RepulsionRadius), 1, repulsionColor, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	var step uint64
	var bodies int
	if g.snapshot != nil {
		step, bodies = g.snapshot.Step, len(g.snapshot.Bodies)
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nStep:   %d\nBodies: %d\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		step,
		bodies,
		g.updateAvg,
		g.drawAvg,
		g.updateAvg+g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.Width)-150, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.Width), int(g.cfg.Height) }
