package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.arcade/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg, err := load(customPath, "engine.yaml", defaultEngineYAML, DefaultEngineConfig)
	if err != nil {
		return cfg, err
	}
	return cfg.Normalized(), nil
}

// LoadCatch loads the Catch game configuration.
// Search order: customPath -> ~/.arcade/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
func LoadCatch(customPath string) (CatchConfig, error) {
	return load(customPath, "catch.yaml", defaultCatchYAML, DefaultCatchConfig)
}

// LoadFlappy loads the Flappy game configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load(customPath, "flappy.yaml", defaultFlappyYAML, DefaultFlappyConfig)
}

// load resolves a YAML config through the search order. Files in the user and
// local directories are overlaid on the defaults, so partial files are fine.
// Unreadable or invalid optional files are skipped; a bad customPath is an error.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	base := fallback()
	if err := yaml.Unmarshal(embedded, &base); err != nil {
		base = fallback()
	}

	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Normalized fills in zero values that would stall the engine: a frame rate
// and banner timers that must count down from a positive value.
func (c EngineConfig) Normalized() EngineConfig {
	if c.FPS <= 0 {
		c.FPS = defaultFPS
	}
	if c.GameOverFrames <= 0 {
		c.GameOverFrames = defaultBannerFrames
	}
	if c.YouWonFrames <= 0 {
		c.YouWonFrames = defaultBannerFrames
	}
	return c
}

// ApplyCatchPreset modifies the config based on a difficulty preset.
func ApplyCatchPreset(cfg *CatchConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Gameplay.BasketWidth = 9
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Gameplay.BasketWidth = 5
	}
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.MinGapSize = 8
		cfg.Obstacles.MaxGapSize = 11
	case DifficultyHard:
		cfg.Obstacles.MinGapSize = 5
		cfg.Obstacles.MaxGapSize = 7
	}
}
