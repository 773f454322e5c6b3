package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/tabgrid/internal/search"
	"github.com/nikbrunner/tabgrid/internal/session"
	"github.com/nikbrunner/tabgrid/internal/tui/layout"
)

// Thumbnailer produces thumbnails and page titles for the add dialog.
// Every method returns "" on failure.
type Thumbnailer interface {
	FetchImage(ctx context.Context, imageURL string) string
	SiteIcon(ctx context.Context, siteURL string) string
	PageTitle(ctx context.Context, pageURL string) string
}

// App is the main bubbletea model for the bookmark grid.
type App struct {
	ctx      context.Context
	session  *session.Session
	images   Thumbnailer
	searcher *search.Delegator
	open     func(string) error
	copy     func(string) error
	log      zerolog.Logger

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode    Mode
	cards   []Card // displayed cards, filtered when a filter is active
	cursor  int
	columns int

	// For gg command
	lastKeyWasG bool

	add           AddState
	settings      SettingsState
	webSearch     WebSearchState
	filter        FilterState
	pendingDelete string // ID of the bookmark awaiting confirmation

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context      context.Context // optional, defaults to context.Background
	Session      *session.Session
	Images       Thumbnailer
	Search       *search.Delegator       // optional, web search disabled if nil
	Open         func(url string) error  // optional, defaults to the system browser
	Copy         func(text string) error // optional, defaults to the system clipboard
	Logger       zerolog.Logger
	Keys         *KeyMap                 // optional, uses default if nil
	Styles       *Styles                 // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig    // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	open := params.Open
	if open == nil {
		open = browser.OpenURL
	}
	copyFn := params.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	app := App{
		ctx:          ctx,
		session:      params.Session,
		images:       params.Images,
		searcher:     params.Search,
		open:         open,
		copy:         copyFn,
		log:          params.Logger,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		add:          NewAddState(layoutConfig),
		settings:     NewSettingsState(layoutConfig),
		webSearch:    NewWebSearchState(layoutConfig),
		filter:       NewFilterState(layoutConfig),
		width:        80,
		height:       24,
	}

	app.refreshCards()
	return app
}

// Run starts the TUI and blocks until the user quits. Session changes made
// outside the update loop trigger a re-render.
func Run(params AppParams) error {
	app := NewApp(params)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if params.Context != nil {
		opts = append(opts, tea.WithContext(params.Context))
	}
	p := tea.NewProgram(app, opts...)

	params.Session.OnChange(func() {
		// Send blocks until the loop receives; the listener may run inside it.
		go p.Send(StoreChangedMsg{})
	})
	defer params.Session.OnChange(nil)

	_, err := p.Run()
	return err
}

// WithDimensions returns a copy of the app with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position in the displayed cards.
func (a App) Cursor() int {
	return a.cursor
}

// Cards returns the currently displayed cards.
func (a App) Cards() []Card {
	return a.cards
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Columns returns the current grid column count.
func (a App) Columns() int {
	return a.columns
}

// AddForm returns the add-bookmark modal state.
func (a App) AddForm() AddState {
	return a.add
}

// Message returns the current status message.
func (a App) Message() string {
	return a.messageText
}

// Selected returns the card under the cursor.
func (a App) Selected() (Card, bool) {
	if a.cursor < 0 || a.cursor >= len(a.cards) {
		return Card{}, false
	}
	return a.cards[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case StoreChangedMsg:
		a.refreshCards()
		return a, nil

	case imageMsg:
		return a.handleImage(msg), nil

	case titleMsg:
		return a.handleTitle(msg), nil

	case cardImageMsg:
		return a.handleCardImage(msg), nil

	case openedMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Could not open "+msg.url)
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeAdd:
			return a.updateAdd(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeSettings:
			return a.updateSettings(msg)
		case ModeWebSearch:
			return a.updateWebSearch(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
				a.mode = ModeNormal
			}
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
}
