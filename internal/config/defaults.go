package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

const (
	defaultFPS          = 12
	defaultBannerFrames = 10
)

// DefaultEngineConfig returns the default engine configuration: every screen
// enabled, dark cyan quit dialog and green-on-black hiscore screens.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EnableTitleScreen:        true,
		EnableInstructionsScreen: true,
		EnableQuitConfirmScreen:  true,
		EnableHiscores:           true,
		FPS:                      defaultFPS,
		GameOverFrames:           defaultBannerFrames,
		YouWonFrames:             defaultBannerFrames,
		Background: Backgrounds{
			Default:      core.ColorDefault,
			Title:        core.ColorDefault,
			Instructions: core.ColorDefault,
			QuitConfirm:  core.ColorDarkCyan.Ptr(),
			InputHiscore: core.ColorDarkGray.Ptr(),
			Hiscores:     core.ColorDarkGray.Ptr(),
		},
		QuitConfirm: QuitConfirmStyles{
			Title:  core.Style{FG: core.ColorBlack, BG: core.ColorDarkCyan},
			Button: core.ButtonStyle{FG: core.ColorBlack, BG: core.ColorDarkCyan, SelectedBG: core.ColorCyan},
			Info:   core.Style{FG: core.ColorWhite, BG: core.ColorDarkCyan},
		},
		InputHiscore: InputHiscoreStyles{
			Title:  core.Style{FG: core.ColorGreen, BG: core.ColorBlack},
			Prompt: core.PromptStyle{FG: core.ColorGreen, BG: core.ColorBlack, FieldBG: core.ColorDarkGreen},
			Info:   core.Style{FG: core.ColorDarkGreen, BG: core.ColorBlack},
		},
		Hiscores: HiscoresStyles{
			Title: core.Style{FG: core.ColorGreen, BG: core.ColorBlack},
			Rank:  core.HiliteStyle{FG: core.ColorGreen, BG: core.ColorBlack, HiliteFG: core.ColorCyan},
			Score: core.HiliteStyle{FG: core.ColorGreen, BG: core.ColorBlack, HiliteFG: core.ColorCyan},
			Name:  core.HiliteStyle{FG: core.ColorGreen, BG: core.ColorBlack, HiliteFG: core.ColorCyan},
			Info:  core.Style{FG: core.ColorDarkGreen, BG: core.ColorBlack},
		},
	}
}

// DefaultCatchConfig returns the default Catch game configuration.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Gameplay: CatchGameplay{
			Lives:         3,
			WinScore:      300,
			BasketWidth:   7,
			BasketSpeed:   2,
			SpawnInterval: 1.5,
			FallSpeed:     6.0,
			PointsPerDrop: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 250,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				SpawnReduction:  0.6,
			},
		},
	}
}

// DefaultFlappyConfig returns the default Flappy game configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      48,
			FlapVelocity: -14,
			MaxFallSpeed: 18,
			PipeSpeed:    10,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     4,
			PipeSpacing:   24,
			MinGapSize:    6,
			MaxGapSize:    9,
			TopMargin:     2,
			BottomMargin:  3,
			PointsPerPipe: 1,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  0.3,
			},
		},
	}
}
