package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/tabgrid/internal/compose"
	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/tui/layout"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeAdd
	ModeConfirmDelete
	ModeSettings
	ModeWebSearch
	ModeHelp
)

// MessageType selects how the status message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Add form fields in focus order.
const (
	FieldURL = iota
	FieldTitle
	FieldImageURL
	fieldCount
)

// AddState holds the add-bookmark modal: the inputs the user edits and the
// form that tracks thumbnails and confirmation.
type AddState struct {
	Form   compose.Form
	Inputs [fieldCount]textinput.Model
	Focus  int
}

// NewAddState creates an AddState with initialized inputs.
func NewAddState(cfg layout.LayoutConfig) AddState {
	url := textinput.New()
	url.Placeholder = "https://..."
	url.CharLimit = cfg.Input.URLCharLimit
	url.Width = cfg.Input.StandardWidth

	title := textinput.New()
	title.Placeholder = "Title (optional)"
	title.CharLimit = cfg.Input.TitleCharLimit
	title.Width = cfg.Input.StandardWidth

	image := textinput.New()
	image.Placeholder = "Image URL (optional)"
	image.CharLimit = cfg.Input.URLCharLimit
	image.Width = cfg.Input.StandardWidth

	return AddState{
		Inputs: [fieldCount]textinput.Model{url, title, image},
	}
}

// Open clears the modal for a new bookmark and returns the form generation.
func (s *AddState) Open() uint64 {
	for i := range s.Inputs {
		s.Inputs[i].Reset()
		s.Inputs[i].Blur()
	}
	s.Focus = FieldURL
	s.Inputs[FieldURL].Focus()
	return s.Form.Open()
}

// Close resets the modal. Lookups still in flight become stale.
func (s *AddState) Close() {
	for i := range s.Inputs {
		s.Inputs[i].Reset()
		s.Inputs[i].Blur()
	}
	s.Form.Reset()
}

// Sync copies the input values into the form.
func (s *AddState) Sync() {
	s.Form.URL = s.Inputs[FieldURL].Value()
	s.Form.Title = s.Inputs[FieldTitle].Value()
	s.Form.ImageURL = s.Inputs[FieldImageURL].Value()
}

// MoveFocus shifts focus by delta fields, wrapping around.
// Returns the field that lost focus.
func (s *AddState) MoveFocus(delta int) int {
	prev := s.Focus
	s.Inputs[prev].Blur()
	s.Focus = (s.Focus + delta + fieldCount) % fieldCount
	s.Inputs[s.Focus].Focus()
	return prev
}

// SettingsState holds the settings modal.
type SettingsState struct {
	ColumnsInput textinput.Model
	Err          string
}

// NewSettingsState creates a SettingsState with initialized input.
func NewSettingsState(cfg layout.LayoutConfig) SettingsState {
	input := textinput.New()
	input.Placeholder = "1-30"
	input.CharLimit = cfg.Input.ColumnsCharLimit
	input.Width = cfg.Input.FilterWidth
	return SettingsState{ColumnsInput: input}
}

// WebSearchState holds the web search prompt.
type WebSearchState struct {
	Input textinput.Model
}

// NewWebSearchState creates a WebSearchState with initialized input.
func NewWebSearchState(cfg layout.LayoutConfig) WebSearchState {
	input := textinput.New()
	input.Placeholder = "Search the web..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth
	return WebSearchState{Input: input}
}

// FilterState holds the local fuzzy filter over the grid.
type FilterState struct {
	Input textinput.Model
	Query string // active query, kept after the input closes
}

// NewFilterState creates a FilterState with initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Input.Blur()
	f.Query = ""
}

// Card is one entry of the displayed grid.
type Card struct {
	Bookmark model.Bookmark
	Index    int // position in the full bookmark list
}
