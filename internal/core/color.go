package core

import (
	"fmt"
	"strings"
)

// Color represents a terminal color for a screen cell (foreground or background).
// Values follow the 16-color ANSI palette, with ColorDefault meaning
// "whatever the terminal uses".
type Color uint8

// The 16 ANSI colors plus the terminal default.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorDarkRed
	ColorDarkGreen
	ColorDarkYellow
	ColorDarkBlue
	ColorDarkMagenta
	ColorDarkCyan
	ColorLightGray
	ColorDarkGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = [...]string{
	ColorDefault:     "default",
	ColorBlack:       "black",
	ColorDarkRed:     "dark_red",
	ColorDarkGreen:   "dark_green",
	ColorDarkYellow:  "dark_yellow",
	ColorDarkBlue:    "dark_blue",
	ColorDarkMagenta: "dark_magenta",
	ColorDarkCyan:    "dark_cyan",
	ColorLightGray:   "light_gray",
	ColorDarkGray:    "dark_gray",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorYellow:      "yellow",
	ColorBlue:        "blue",
	ColorMagenta:     "magenta",
	ColorCyan:        "cyan",
	ColorWhite:       "white",
}

// String returns the config name of the color (e.g. "dark_cyan").
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ANSI returns the ANSI palette index for the color, or -1 for ColorDefault.
func (c Color) ANSI() int {
	if c == ColorDefault || int(c) >= len(colorNames) {
		return -1
	}
	return int(c) - 1
}

// MarshalText implements encoding.TextMarshaler so colors appear by name in YAML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Names are case-insensitive; dashes and spaces are accepted in place of underscores.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor looks up a color by its config name.
func ParseColor(name string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if key == "" {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if n == key {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", name)
}

// Ptr returns a pointer to a copy of c. Used for optional background overrides.
func (c Color) Ptr() *Color {
	return &c
}
