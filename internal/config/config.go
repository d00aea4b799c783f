// Package config provides YAML-based configuration loading for the engine
// and the bundled games, plus difficulty management.
package config

import "github.com/vovakirdan/tui-arcade-engine/internal/core"

// EngineConfig is the immutable engine configuration: which screens are
// enabled, background colors per screen and the styles of the built-in screens.
// Optional backgrounds (pointers) left nil inherit the current background.
type EngineConfig struct {
	EnableTitleScreen        bool `yaml:"enable_title_screen"`
	EnableInstructionsScreen bool `yaml:"enable_instructions_screen"`
	EnableQuitConfirmScreen  bool `yaml:"enable_quit_confirm_screen"`
	EnableHiscores           bool `yaml:"enable_hiscores"`

	FPS            int `yaml:"fps"`              // Frames per second
	GameOverFrames int `yaml:"game_over_frames"` // Frames before the game over banner appears
	YouWonFrames   int `yaml:"you_won_frames"`   // Frames before the you won banner appears

	Background Backgrounds `yaml:"background"`

	QuitConfirm  QuitConfirmStyles  `yaml:"quit_confirm"`
	InputHiscore InputHiscoreStyles `yaml:"input_hiscore"`
	Hiscores     HiscoresStyles     `yaml:"hiscores"`
}

// Backgrounds holds the frame background color per screen.
type Backgrounds struct {
	Default      core.Color  `yaml:"default"`
	Title        core.Color  `yaml:"title"`
	Instructions core.Color  `yaml:"instructions"`
	Paused       *core.Color `yaml:"paused,omitempty"`
	QuitConfirm  *core.Color `yaml:"quit_confirm,omitempty"`
	InputHiscore *core.Color `yaml:"input_hiscore,omitempty"`
	Hiscores     *core.Color `yaml:"hiscores,omitempty"`
}

// QuitConfirmStyles styles the quit confirmation dialog.
type QuitConfirmStyles struct {
	Title  core.Style       `yaml:"title"`
	Button core.ButtonStyle `yaml:"button"`
	Info   core.Style       `yaml:"info"`
}

// InputHiscoreStyles styles the name entry screen.
type InputHiscoreStyles struct {
	Title  core.Style       `yaml:"title"`
	Prompt core.PromptStyle `yaml:"prompt"`
	Info   core.Style       `yaml:"info"`
}

// HiscoresStyles styles the hiscore board.
type HiscoresStyles struct {
	Title core.Style       `yaml:"title"`
	Rank  core.HiliteStyle `yaml:"rank"`
	Score core.HiliteStyle `yaml:"score"`
	Name  core.HiliteStyle `yaml:"name"`
	Info  core.Style       `yaml:"info"`
}

// CatchConfig contains all configuration for the Catch demo game.
type CatchConfig struct {
	Gameplay   CatchGameplay    `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CatchGameplay defines the rules of the Catch game.
type CatchGameplay struct {
	Lives         int     `yaml:"lives"`          // Misses allowed before game over
	WinScore      int     `yaml:"win_score"`      // Score that wins the game
	BasketWidth   int     `yaml:"basket_width"`   // Basket width in cells
	BasketSpeed   int     `yaml:"basket_speed"`   // Cells moved per key press
	SpawnInterval float64 `yaml:"spawn_interval"` // Seconds between drops at base difficulty
	FallSpeed     float64 `yaml:"fall_speed"`     // Rows per second at base difficulty
	PointsPerDrop int     `yaml:"points_per_drop"`
}

// FlappyConfig contains all configuration for the Flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy, in rows and columns
// per second so they do not depend on the frame rate.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Downward acceleration, rows/s²
	FlapVelocity float64 `yaml:"flap_velocity"` // Velocity set by a flap, negative is up
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	PipeSpeed    float64 `yaml:"pipe_speed"` // Columns per second at base difficulty
}

// FlappyObstacles defines obstacle parameters for Flappy.
type FlappyObstacles struct {
	PipeWidth     int `yaml:"pipe_width"`
	PipeSpacing   int `yaml:"pipe_spacing"` // Columns between consecutive pipes
	MinGapSize    int `yaml:"min_gap_size"`
	MaxGapSize    int `yaml:"max_gap_size"`
	TopMargin     int `yaml:"top_margin"`
	BottomMargin  int `yaml:"bottom_margin"`
	PointsPerPipe int `yaml:"points_per_pipe"`
}

// FlappyPlayer defines player parameters for Flappy.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speeds at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of spawn intervals and gaps removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
