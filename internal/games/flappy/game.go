// Package flappy implements a Flappy Bird-style engine host.
// The player flaps a bird through gaps in vertical pipes; touching a pipe,
// the ceiling or the ground ends the game.
package flappy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/engine"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	BodyChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// Game implements engine.Host.
type Game struct {
	engine.NopHooks

	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	pipes      *PipeManager
	rt         core.RuntimeConfig

	birdY   float64 // top row of the bird
	birdVel float64 // rows per second, negative is up
	elapsed float64
	passed  int
	flaps   int
	crashed bool
	quit    bool
}

// New creates a Flappy game with the default configuration.
func New() *Game {
	return NewWithConfig(config.DefaultFlappyConfig())
}

// NewWithConfig creates a Flappy game with the given configuration.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	g := &Game{}
	g.applyConfig(cfg)
	g.Reset(core.DefaultConfig())
	return g
}

func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// LoadConfig reads flappy.yaml and applies a difficulty preset on top of it.
func (g *Game) LoadConfig(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadFlappy(customPath)
	if err != nil {
		return err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	g.applyConfig(cfg)
	g.Reset(g.rt)
	return nil
}

func (g *Game) applyConfig(cfg config.FlappyConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.pipes = nil
}

// Reset initializes the game for a new session.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	if g.pipes == nil {
		g.pipes = NewPipeManager(rt.Seed, rt.ScreenW, rt.ScreenH, &g.cfg, g.difficulty)
	} else {
		g.pipes.SetSize(rt.ScreenW, rt.ScreenH)
		g.pipes.Reset(rt.Seed)
	}
	g.birdY = float64(rt.ScreenH) / 2
	g.birdVel = 0
	g.elapsed = 0
	g.passed = 0
	g.flaps = 0
	g.crashed = false
	g.quit = false
}

// Update advances the game by one engine frame and draws it.
func (g *Game) Update(e *engine.Engine) {
	scr := e.Screen()
	g.fit(scr.Width(), scr.Height())

	if !g.crashed {
		g.step(e)
	}
	g.render(scr, e.Score())
}

func (g *Game) fit(width, height int) {
	if width == g.rt.ScreenW && height == g.rt.ScreenH {
		return
	}
	g.rt.ScreenW, g.rt.ScreenH = width, height
	g.pipes.SetSize(width, height)
}

func (g *Game) step(e *engine.Engine) {
	dt := e.DT()
	g.elapsed += dt
	phys := g.cfg.Physics
	player := g.cfg.Player

	if kp := e.Input(); kp.Key == ' ' || kp.Special == core.KeyUp {
		g.birdVel = phys.FlapVelocity
		g.flaps++
	}
	g.birdVel = min(g.birdVel+phys.Gravity*dt, phys.MaxFallSpeed)
	g.birdY += g.birdVel * dt

	if n := g.pipes.Update(dt, player.X, e.Score(), g.elapsed); n > 0 {
		g.passed += n
		e.AddScore(n * g.cfg.Obstacles.PointsPerPipe)
	}

	ground := g.rt.ScreenH - 1
	switch {
	case g.birdY < 0:
		g.birdY = 0
		g.crash(e)
	case int(g.birdY)+player.Height > ground:
		g.birdY = float64(ground - player.Height)
		g.crash(e)
	case g.pipes.CheckCollision(g.birdRect()):
		g.crash(e)
	}
}

func (g *Game) crash(e *engine.Engine) {
	g.crashed = true
	e.SetStateGameOver()
}

// birdRect returns the bird's collision rectangle.
func (g *Game) birdRect() core.Rect {
	p := g.cfg.Player
	return core.NewRect(p.X, int(g.birdY), p.Width, p.Height)
}

func (g *Game) render(scr *core.Screen, score int) {
	ground := scr.Height() - 1
	scr.DrawStyled(0, ground, strings.Repeat(string(GroundChar), scr.Width()), core.Style{FG: core.ColorDarkYellow})

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(scr, p, ground)
	}

	bird := g.birdRect()
	for y := bird.Y; y < bird.Bottom(); y++ {
		for x := bird.X; x < bird.Right(); x++ {
			r := BodyChar
			if x == bird.Right()-1 && y == bird.Y {
				r = PlayerChar
			}
			scr.SetCell(x, y, core.Cell{Rune: r, FG: core.ColorYellow})
		}
	}

	scr.DrawStyled(2, 0, fmt.Sprintf(" Score: %d ", score), core.Style{FG: core.ColorWhite})
}

func (g *Game) drawPipe(scr *core.Screen, p Pipe, ground int) {
	w := g.cfg.Obstacles.PipeWidth
	pipe := core.Style{FG: core.ColorGreen}
	body := strings.Repeat(string(PipeChar), w)

	x := p.Col()
	for y := 0; y < p.GapY-1; y++ {
		scr.DrawStyled(x, y, body, pipe)
	}
	if p.GapY > 0 {
		scr.DrawStyled(x, p.GapY-1, strings.Repeat(string(PipeCapTop), w), pipe)
	}

	bottomY := p.GapY + p.GapHeight
	if bottomY < ground {
		scr.DrawStyled(x, bottomY, strings.Repeat(string(PipeCapBottom), w), pipe)
	}
	for y := bottomY + 1; y < ground; y++ {
		scr.DrawStyled(x, y, body, pipe)
	}
}

// DrawTitle draws the title screen.
func (g *Game) DrawTitle(e *engine.Engine) {
	scr := e.Screen()
	mid := scr.Height() / 2
	title := core.Style{FG: core.ColorGreen}

	scr.DrawStyledCentered(mid-4, "#####  #       ###   ####   ####   #   # ", title)
	scr.DrawStyledCentered(mid-3, "#      #      #   #  #   #  #   #   # #  ", title)
	scr.DrawStyledCentered(mid-2, "####   #      #####  ####   ####     #   ", title)
	scr.DrawStyledCentered(mid-1, "#      #      #   #  #      #        #   ", title)
	scr.DrawStyledCentered(mid, "#      #####  #   #  #      #        #   ", title)

	scr.DrawStyledCentered(mid+3, "Press Space to start", core.Style{FG: core.ColorWhite})
}

// DrawInstructions draws the instructions screen.
func (g *Game) DrawInstructions(e *engine.Engine) {
	scr := e.Screen()
	lines := []string{
		"HOW TO PLAY",
		"",
		"Space / Up     flap",
		"P              pause",
		"Esc            quit",
		"",
		"Fly through the gaps between the pipes.",
		"Every pipe you pass scores a point.",
		"",
		"Press Space to begin",
	}

	top := (scr.Height() - len(lines)) / 2
	for i, line := range lines {
		scr.DrawTextCentered(top+i, line)
	}
}

// OnExitInstructions starts the clock for time-based difficulty from zero.
func (g *Game) OnExitInstructions() {
	g.elapsed = 0
}

// OnQuit marks the session as abandoned.
func (g *Game) OnQuit() {
	g.quit = true
}

// Crashed reports whether the bird hit something.
func (g *Game) Crashed() bool {
	return g.crashed
}

// BirdY returns the bird's top row as a fractional position.
func (g *Game) BirdY() float64 {
	return g.birdY
}

// Passed returns the number of pipes passed.
func (g *Game) Passed() int {
	return g.passed
}

// Flaps returns the number of flaps so far.
func (g *Game) Flaps() int {
	return g.flaps
}

// Quit reports whether the player quit the session.
func (g *Game) Quit() bool {
	return g.quit
}
