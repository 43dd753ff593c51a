package grid

import "fyne.io/fyne/v2"

// Settings are the user adjustable options of a grid that survive restarts.
type Settings struct {
	Columns      int
	Haptics      bool
	ScrollAnchor ScrollAnchorPolicy
}

// LoadSettings reads settings from p, falling back to the defaults for
// missing or invalid values.
func LoadSettings(p fyne.Preferences) Settings {
	s := Settings{
		Columns:      p.IntWithFallback(columnsKey, DefaultColumns),
		Haptics:      p.BoolWithFallback(hapticsKey, true),
		ScrollAnchor: ScrollAnchorPolicy(p.IntWithFallback(scrollAnchorKey, int(ScrollAnchorNone))),
	}
	if s.Columns < 1 {
		s.Columns = DefaultColumns
	}
	if s.ScrollAnchor != ScrollAnchorNone && s.ScrollAnchor != ScrollAnchorPinDragged {
		s.ScrollAnchor = ScrollAnchorNone
	}
	return s
}

// Save writes the settings to p.
func (s Settings) Save(p fyne.Preferences) {
	p.SetInt(columnsKey, s.Columns)
	p.SetBool(hapticsKey, s.Haptics)
	p.SetInt(scrollAnchorKey, int(s.ScrollAnchor))
}
