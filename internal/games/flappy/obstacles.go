package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the player to pass through.
type Pipe struct {
	X         float64 // Horizontal position of the left edge
	GapY      int     // Y position where gap starts (top of gap)
	GapHeight int     // Height of the passable gap
	Passed    bool    // Whether the player has passed this pipe (for scoring)
}

// Col returns the screen column of the pipe's left edge.
func (p Pipe) Col() int {
	return int(math.Floor(p.X))
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect(pipeWidth int) core.Rect {
	return core.NewRect(p.Col(), 0, pipeWidth, p.GapY)
}

// BottomRect returns the collision rectangle between the gap and the ground.
func (p Pipe) BottomRect(pipeWidth, groundY int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.Col(), bottomY, pipeWidth, groundY-bottomY)
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	screenH    int
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
func NewPipeManager(seed int64, screenW, screenH int, cfg *config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	pm := &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		screenW:    screenW,
		screenH:    screenH,
		cfg:        cfg,
		difficulty: diff,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// SetSize updates the screen dimensions. Pipes already on screen keep their gaps.
func (pm *PipeManager) SetSize(screenW, screenH int) {
	pm.screenW = screenW
	pm.screenH = screenH
}

// groundY is the row of the ground line.
func (pm *PipeManager) groundY() int {
	return pm.screenH - 1
}

// Update moves pipes left by dt seconds of travel and spawns new ones as
// needed. It returns the number of pipes passed this frame.
func (pm *PipeManager) Update(dt float64, playerX, score int, elapsed float64) int {
	obs := pm.cfg.Obstacles
	speed := pm.difficulty.Speed(pm.cfg.Physics.PipeSpeed, score, elapsed)

	for i := range pm.pipes {
		pm.pipes[i].X -= speed * dt
	}

	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && pm.pipes[i].Col()+obs.PipeWidth < playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	// Remove pipes that have moved off the left side
	visible := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.Col()+obs.PipeWidth > 0 {
			visible = append(visible, p)
		}
	}
	pm.pipes = visible

	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X < float64(pm.screenW-obs.PipeSpacing) {
		pm.spawnPipe(score, elapsed)
	}
	return passed
}

// spawnPipe creates a new pipe at the right edge of the screen. Gaps narrow
// towards MinGapSize as the difficulty rises.
func (pm *PipeManager) spawnPipe(score int, elapsed float64) {
	obs := pm.cfg.Obstacles

	maxGap := int(math.Round(pm.difficulty.Shrink(float64(obs.MaxGapSize), score, elapsed)))
	maxGap = max(maxGap, obs.MinGapSize)

	gapHeight := obs.MinGapSize
	if r := maxGap - obs.MinGapSize; r > 0 {
		gapHeight += pm.rng.Intn(r + 1)
	}

	minGapY := obs.TopMargin
	maxGapY := max(pm.groundY()-obs.BottomMargin-gapHeight, minGapY)

	gapY := minGapY
	if maxGapY > minGapY {
		gapY += pm.rng.Intn(maxGapY - minGapY + 1)
	}

	pm.pipes = append(pm.pipes, Pipe{
		X:         float64(pm.screenW),
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given rectangle collides with any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	w := pm.cfg.Obstacles.PipeWidth
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect(w)) || r.Intersects(p.BottomRect(w, pm.groundY())) {
			return true
		}
	}
	return false
}
