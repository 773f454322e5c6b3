package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "h/l:move a:add q:quit"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (h/j/k/l, gg)
	Edit   []Hint // Edit hints (a, d, r)
	Action []Hint // Action hints (Enter, s, /)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeAdd:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next"}},
			Action: []Hint{{Key: "C-f", Desc: "fetch image"}, {Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeSettings, ModeWebSearch:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "confirm"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeConfirmDelete:
		// Hints are shown inside the modal itself
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal (grid browse).
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "hjkl", Desc: "move"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "y", Desc: "yank"},
			{Key: "s", Desc: "search"},
			{Key: "/", Desc: "filter"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
			{Key: "d", Desc: "del"},
			{Key: ",", Desc: "columns"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if a.filter.Query != "" {
		hints.System = append([]Hint{{Key: "Esc", Desc: "clear filter"}}, hints.System...)
	}
	return hints
}
