// Package catch implements a small falling-objects game used as the bundled
// engine host. The player moves a basket along the bottom row and catches
// drops; missing too many ends the game, reaching the target score wins it.
package catch

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
	BasketChar = '='
	BasketEdge = '\\'
	DropChar   = 'o'
	LifeChar   = '♥'
	GroundChar = '─'
)

const hudRow = 0

// Outcome is how a session ended.
type Outcome int

const (
	Playing Outcome = iota
	Lost
	Won
)

// Game implements engine.Host.
type Game struct {
	engine.NopHooks

	cfg        config.CatchConfig
	difficulty *config.DifficultyManager
	drops      *DropManager
	rt         core.RuntimeConfig

	basketX int
	lives   int
	caught  int
	missed  int
	elapsed float64 // gameplay seconds, accumulated from the engine's DT
	outcome Outcome
	quit    bool
}

// New creates a Catch game with the default configuration.
func New() *Game {
	return NewWithConfig(config.DefaultCatchConfig())
}

// NewWithConfig creates a Catch game with the given configuration.
func NewWithConfig(cfg config.CatchConfig) *Game {
	g := &Game{}
	g.applyConfig(cfg)
	g.Reset(core.DefaultConfig())
	return g
}

func init() {
	registry.Register("catch", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Catch"
}

// LoadConfig reads catch.yaml through the config search order and applies
// a difficulty preset on top of it. An empty preset keeps the file's values.
func (g *Game) LoadConfig(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadCatch(customPath)
	if err != nil {
		return err
	}
	if preset != "" {
		config.ApplyCatchPreset(&cfg, preset)
	}
	g.applyConfig(cfg)
	g.Reset(g.rt)
	return nil
}

func (g *Game) applyConfig(cfg config.CatchConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.drops = nil
}

// Reset initializes the game for a new session.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	if g.drops == nil {
		g.drops = NewDropManager(rt.Seed, rt.ScreenW, &g.cfg.Gameplay, g.difficulty)
	} else {
		g.drops.SetWidth(rt.ScreenW)
		g.drops.Reset(rt.Seed)
	}
	g.basketX = (rt.ScreenW - g.cfg.Gameplay.BasketWidth) / 2
	g.lives = g.cfg.Gameplay.Lives
	g.caught = 0
	g.missed = 0
	g.elapsed = 0
	g.outcome = Playing
	g.quit = false
}

// Update advances the game by one engine frame and draws it. Once the
// session has an outcome the board freezes but is still drawn under the
// engine's banner.
func (g *Game) Update(e *engine.Engine) {
	scr := e.Screen()
	g.fit(scr.Width())

	if g.outcome == Playing {
		g.step(e, scr.Height())
	}
	g.render(scr, e.Score())
}

func (g *Game) fit(width int) {
	if width == g.rt.ScreenW {
		return
	}
	g.rt.ScreenW = width
	g.drops.SetWidth(width)
	g.basketX = core.Clamp(g.basketX, 0, width-g.cfg.Gameplay.BasketWidth)
}

func (g *Game) step(e *engine.Engine, height int) {
	dt := e.DT()
	g.elapsed += dt
	play := g.cfg.Gameplay

	switch e.Input().Special {
	case core.KeyLeft:
		g.basketX -= play.BasketSpeed
	case core.KeyRight:
		g.basketX += play.BasketSpeed
	}
	g.basketX = core.Clamp(g.basketX, 0, g.rt.ScreenW-play.BasketWidth)

	basketRow := g.basketRow(height)
	for _, d := range g.drops.Update(dt, basketRow, e.Score(), g.elapsed) {
		if d.X >= g.basketX && d.X < g.basketX+play.BasketWidth {
			g.caught++
			e.AddScore(play.PointsPerDrop)
			continue
		}
		g.missed++
		g.lives--
	}

	switch {
	case g.lives <= 0:
		g.lives = 0
		g.outcome = Lost
		e.SetStateGameOver()
	case play.WinScore > 0 && e.Score() >= play.WinScore:
		g.outcome = Won
		e.SetStateYouWon()
	}
}

func (g *Game) basketRow(height int) int {
	return height - 2
}

func (g *Game) render(scr *core.Screen, score int) {
	h := scr.Height()
	ground := strings.Repeat(string(GroundChar), scr.Width())
	scr.DrawText(0, h-1, ground)

	for _, d := range g.drops.Drops() {
		scr.SetCell(d.X, d.Row(), core.Cell{Rune: DropChar, FG: core.ColorCyan})
	}

	basket := core.Style{FG: core.ColorYellow}
	row := g.basketRow(h)
	w := g.cfg.Gameplay.BasketWidth
	scr.DrawStyled(g.basketX, row, string(BasketEdge)+strings.Repeat(string(BasketChar), max(0, w-2))+"/", basket)

	lives := strings.Repeat(string(LifeChar), g.lives)
	scr.DrawStyled(1, hudRow, fmt.Sprintf(" Score: %d ", score), core.Style{FG: core.ColorWhite})
	scr.DrawStyled(scr.Width()-len([]rune(lives))-2, hudRow, lives, core.Style{FG: core.ColorRed})
}

// DrawTitle draws the title screen.
func (g *Game) DrawTitle(e *engine.Engine) {
	scr := e.Screen()
	mid := scr.Height() / 2
	title := core.Style{FG: core.ColorYellow}

	scr.DrawStyledCentered(mid-4, " ####   ###  ##### ####  #   # ", title)
	scr.DrawStyledCentered(mid-3, "#      #   #   #  #      #   # ", title)
	scr.DrawStyledCentered(mid-2, "#      #####   #  #      ##### ", title)
	scr.DrawStyledCentered(mid-1, "#      #   #   #  #      #   # ", title)
	scr.DrawStyledCentered(mid, " ####  #   #   #   ####  #   # ", title)

	scr.DrawStyledCentered(mid+3, "Press Space to start", core.Style{FG: core.ColorWhite})
}

// DrawInstructions draws the instructions screen.
func (g *Game) DrawInstructions(e *engine.Engine) {
	scr := e.Screen()
	play := g.cfg.Gameplay
	lines := []string{
		"HOW TO PLAY",
		"",
		"Left / Right   move the basket",
		"P              pause",
		"Esc            quit",
		"",
		fmt.Sprintf("Each drop is worth %d points.", play.PointsPerDrop),
		fmt.Sprintf("Miss %d and the game is over.", play.Lives),
		fmt.Sprintf("Reach %d points to win.", play.WinScore),
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

// Outcome reports how the session ended so far.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Lives returns the remaining lives.
func (g *Game) Lives() int {
	return g.lives
}

// Caught returns how many drops were caught.
func (g *Game) Caught() int {
	return g.caught
}

// Missed returns how many drops hit the ground.
func (g *Game) Missed() int {
	return g.missed
}

// BasketX returns the left column of the basket.
func (g *Game) BasketX() int {
	return g.basketX
}

// Quit reports whether the player quit the session.
func (g *Game) Quit() bool {
	return g.quit
}
