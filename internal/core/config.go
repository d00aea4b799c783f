// Package core provides fundamental types for the engine: colors and styles,
// the screen cell buffer and the per-frame input snapshot. It has no external
// dependencies so game logic and the state machine stay pure and testable.
package core

// RuntimeConfig contains configuration passed to the engine and host games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second; 0 means use the engine config
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with the engine's native 80x30 playfield.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 0,
		Seed:     0, // 0 means use current time in platform layer
	}
}
