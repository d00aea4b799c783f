package core

// Style is a foreground/background color pair for a piece of text.
type Style struct {
	FG Color `yaml:"fg"`
	BG Color `yaml:"bg"`
}

// ButtonStyle styles a selectable button. The selected button is drawn
// with SelectedBG instead of BG.
type ButtonStyle struct {
	FG         Color `yaml:"fg"`
	BG         Color `yaml:"bg"`
	SelectedBG Color `yaml:"selected_bg"`
}

// Button returns the Style to use for a button in the given selection state.
func (b ButtonStyle) Button(selected bool) Style {
	if selected {
		return Style{FG: b.FG, BG: b.SelectedBG}
	}
	return Style{FG: b.FG, BG: b.BG}
}

// PromptStyle styles a text prompt. FieldBG is the background of the
// editable field, which the caret is drawn inverted against.
type PromptStyle struct {
	FG      Color `yaml:"fg"`
	BG      Color `yaml:"bg"`
	FieldBG Color `yaml:"field_bg"`
}

// HiliteStyle is a Style with an alternate foreground for a highlighted row.
type HiliteStyle struct {
	FG       Color `yaml:"fg"`
	BG       Color `yaml:"bg"`
	HiliteFG Color `yaml:"hilite_fg"`
}

// Text returns the Style for a row, highlighted or not.
func (h HiliteStyle) Text(hilite bool) Style {
	if hilite {
		return Style{FG: h.HiliteFG, BG: h.BG}
	}
	return Style{FG: h.FG, BG: h.BG}
}
