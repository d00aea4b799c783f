package catch

import (
	"math/rand"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
)

// Drop is a single falling item.
type Drop struct {
	X int
	Y float64 // Row, fractional so slow speeds still move at low frame rates
}

// Row returns the screen row the drop occupies.
func (d Drop) Row() int {
	return int(d.Y)
}

// DropManager spawns drops at random columns and moves them down.
type DropManager struct {
	drops      []Drop
	rng        *rand.Rand
	width      int
	untilSpawn float64 // seconds until the next spawn
	cfg        *config.CatchGameplay
	difficulty *config.DifficultyManager
}

// NewDropManager creates a drop manager with the given RNG seed.
func NewDropManager(seed int64, width int, cfg *config.CatchGameplay, diff *config.DifficultyManager) *DropManager {
	dm := &DropManager{
		drops:      make([]Drop, 0, 16),
		width:      width,
		cfg:        cfg,
		difficulty: diff,
	}
	dm.Reset(seed)
	return dm
}

// Reset clears all drops and reseeds the RNG.
func (dm *DropManager) Reset(seed int64) {
	dm.drops = dm.drops[:0]
	dm.rng = rand.New(rand.NewSource(seed))
	dm.untilSpawn = 0
}

// SetWidth updates the playfield width. Drops outside it are clamped in.
func (dm *DropManager) SetWidth(width int) {
	dm.width = width
	for i := range dm.drops {
		dm.drops[i].X = min(dm.drops[i].X, max(0, width-1))
	}
}

// Drops returns the drops currently in the air.
func (dm *DropManager) Drops() []Drop {
	return dm.drops
}

// Update advances drops by dt seconds and spawns new ones when due.
// Drops that reach floorRow are removed and returned so the caller can
// decide whether each one was caught.
func (dm *DropManager) Update(dt float64, floorRow, score int, elapsed float64) []Drop {
	speed := dm.difficulty.Speed(dm.cfg.FallSpeed, score, elapsed)

	var landed []Drop
	kept := dm.drops[:0]
	for _, d := range dm.drops {
		d.Y += speed * dt
		if d.Row() >= floorRow {
			landed = append(landed, d)
			continue
		}
		kept = append(kept, d)
	}
	dm.drops = kept

	dm.untilSpawn -= dt
	if dm.untilSpawn <= 0 && dm.width > 0 {
		dm.drops = append(dm.drops, Drop{X: dm.rng.Intn(dm.width), Y: 1})
		dm.untilSpawn = dm.difficulty.Shrink(dm.cfg.SpawnInterval, score, elapsed)
	}
	return landed
}
