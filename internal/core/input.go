package core

// SpecialKey is a non-character key captured by the platform layer.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
)

// String returns a human-readable name for the key.
func (k SpecialKey) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// KeyPress is the input snapshot for one frame: what was pressed since the
// previous frame. The platform builds it from raw key events and the engine
// consumes it once per frame.
type KeyPress struct {
	Quit    bool       // quit request (Esc, Ctrl+C)
	Pause   bool       // pause toggle
	Special SpecialKey // most recent special key, KeyNone if none
	Key     rune       // most recent literal character, 0 if none
}

// Empty reports whether nothing was pressed this frame.
func (k KeyPress) Empty() bool {
	return k == KeyPress{}
}

// Merge folds a later key event into the snapshot. Flags accumulate;
// the most recent special key and character win.
func (k *KeyPress) Merge(later KeyPress) {
	k.Quit = k.Quit || later.Quit
	k.Pause = k.Pause || later.Pause
	if later.Special != KeyNone {
		k.Special = later.Special
	}
	if later.Key != 0 {
		k.Key = later.Key
	}
}

// Clear resets the snapshot for the next frame.
func (k *KeyPress) Clear() {
	*k = KeyPress{}
}
