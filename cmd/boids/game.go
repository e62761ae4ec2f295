package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/ui"
)

const boidSize = 12.0 // pixels

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// Game owns the world, translates raw input into simulation commands and
// renders the resulting snapshot. All timing and diagnostics stay here; the
// core only ever receives (dt, obstacle, command).
type Game struct {
	cfg   *simulation.Config
	world *simulation.World
	boids []simulation.Boid

	panel           *ui.Panel
	avoidSlider     *ui.Slider
	centeringSlider *ui.Slider
	matchingSlider  *ui.Slider
	turnSlider      *ui.Slider
	gridCheckbox    *ui.Checkbox

	metrics   Metrics
	lastFrame time.Time
}

// NewGame builds the world and the tuning panel.
func NewGame(cfg *simulation.Config, seed uint64) (*Game, error) {
	world, err := simulation.NewWorld(cfg, seed)
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, world: world}

	panel := ui.NewPanel(10, 10, 220, "Tuning (Apply restarts)")
	g.avoidSlider = panel.AddSlider("Avoid Factor", 0.05, 2.0, cfg.AvoidFactor)
	g.centeringSlider = panel.AddSlider("Centering Factor", 0.001, 0.2, cfg.CenteringFactor)
	g.matchingSlider = panel.AddSlider("Matching Factor", 0.01, 0.5, cfg.MatchingFactor)
	g.turnSlider = panel.AddSlider("Turn Factor", 1, 64, cfg.TurnFactor)
	g.gridCheckbox = panel.AddCheckbox("Show grid cells", false)
	panel.AddButton("Apply", g.applyTuning)
	g.panel = panel

	return g, nil
}

// applyTuning rebuilds the world with the slider values. Tuning constants are
// construction-only in the core, so a new world (back in Setup) is the only
// way to change the rules.
func (g *Game) applyTuning() {
	cfg := *g.cfg
	cfg.AvoidFactor = g.avoidSlider.Value
	cfg.CenteringFactor = g.centeringSlider.Value
	cfg.MatchingFactor = g.matchingSlider.Value
	cfg.TurnFactor = g.turnSlider.Value

	world, err := simulation.NewWorld(&cfg, uint64(time.Now().UnixNano()))
	if err != nil {
		// Slider bounds keep the config valid; this is belt and braces.
		log.Printf("apply tuning: %v", err)
		return
	}

	*g.cfg = cfg
	g.world = world
	g.boids = nil
	g.metrics.Reset()
}

// command translates this frame's key presses into one simulation command.
func (g *Game) command() simulation.Command {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.world.Phase() == simulation.PhasePaused {
			return simulation.CmdResume
		}
		return simulation.CmdStart
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		return simulation.CmdPause
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return simulation.CmdReset
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return simulation.CmdGrow
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return simulation.CmdShrink
	}
	return simulation.CmdNone
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.metrics.ObserveUpdate(time.Since(start))
	}()

	// Full wall-clock delta since the previous frame. The first frame runs
	// with dt=0 so nothing jumps.
	var dt float64
	if !g.lastFrame.IsZero() {
		elapsed := start.Sub(g.lastFrame)
		dt = elapsed.Seconds()
		g.metrics.CountFrame(elapsed)
	}
	g.lastFrame = start

	g.panel.Update()

	mx, my := ebiten.CursorPosition()
	obstacle := geometry.Vector2D{X: float64(mx), Y: float64(my)}

	boids, err := g.world.Step(dt, obstacle, g.command())
	if err != nil {
		return err
	}
	g.boids = boids

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.metrics.ObserveDraw(time.Since(start))
	}()

	screen.Fill(color.RGBA{R: 38, G: 51, B: 56, A: 255})

	if g.world.Phase() == simulation.PhaseSetup {
		g.drawMenu(screen)
		g.panel.Draw(screen)
		return
	}

	if g.gridCheckbox.Value {
		g.drawGrid(screen)
	}

	for i := range g.boids {
		drawBoid(screen, &g.boids[i])
	}

	// Cursor highlight: the obstacle the boids are fleeing.
	mx, my := ebiten.CursorPosition()
	vector.StrokeCircle(screen, float32(mx), float32(my),
		float32(g.cfg.ObstacleRadius/2), 1,
		color.RGBA{R: 255, G: 255, B: 255, A: 128}, true)

	g.drawStats(screen)
	g.panel.Draw(screen)
}

// drawBoid renders one boid as a triangle pointing along its velocity, tinted
// with the boid's own color.
func drawBoid(screen *ebiten.Image, b *simulation.Boid) {
	angle := math.Atan2(b.Vel.Y, b.Vel.X)

	tipX := b.Pos.X + math.Cos(angle)*boidSize/2
	tipY := b.Pos.Y + math.Sin(angle)*boidSize/2
	rightX := b.Pos.X + math.Cos(angle+2.5)*boidSize/3
	rightY := b.Pos.Y + math.Sin(angle+2.5)*boidSize/3
	leftX := b.Pos.X + math.Cos(angle-2.5)*boidSize/3
	leftY := b.Pos.Y + math.Sin(angle-2.5)*boidSize/3

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1,
			ColorR: b.Color[0], ColorG: b.Color[1], ColorB: b.Color[2], ColorA: b.Color[3]},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1,
			ColorR: b.Color[0], ColorG: b.Color[1], ColorB: b.Color[2], ColorA: b.Color[3]},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1,
			ColorR: b.Color[0], ColorG: b.Color[1], ColorB: b.Color[2], ColorA: b.Color[3]},
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// drawGrid overlays the spatial index cell boundaries.
func (g *Game) drawGrid(screen *ebiten.Image) {
	grid := g.world.Grid()
	clr := color.RGBA{R: 70, G: 90, B: 95, A: 255}

	for x := 1; x < grid.Cols(); x++ {
		fx := float32(float64(x) * grid.CellSize())
		vector.StrokeLine(screen, fx, 0, fx, float32(g.cfg.WorldHeight), 1, clr, false)
	}
	for y := 1; y < grid.Rows(); y++ {
		fy := float32(float64(y) * grid.CellSize())
		vector.StrokeLine(screen, 0, fy, float32(g.cfg.WorldWidth), fy, 1, clr, false)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	menu := "BOIDS\n\n" +
		"play : <space>\n" +
		"pause : <p>\n" +
		"reset : <r>\n" +
		"add boids : <up>\n" +
		"reduce boids : <down>\n\n" +
		fmt.Sprintf("population : %d", g.world.Population())
	ebitenutil.DebugPrintAt(screen,
		menu,
		int(g.cfg.WorldWidth/2-60), int(g.cfg.WorldHeight/2-60))
}

func (g *Game) drawStats(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f | Boids: %d | %s\nUpdate: %.2fms\nDraw:   %.2fms",
		g.metrics.FPS,
		len(g.boids),
		g.world.Phase(),
		g.metrics.UpdateAvg,
		g.metrics.DrawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-180, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}
