package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabgrid/internal/compose"
	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/search"
)

// refreshCards rebuilds the displayed cards from the session, applying the
// active filter.
func (a *App) refreshCards() {
	if a.session == nil {
		a.cards = nil
		a.columns = model.DefaultColumns
		return
	}

	bookmarks := a.session.Bookmarks()
	a.columns = a.session.Settings().Columns

	if a.filter.Query != "" {
		results := search.FuzzySearchBookmarks(bookmarks, a.filter.Query)
		a.cards = make([]Card, len(results))
		for i, r := range results {
			a.cards[i] = Card{Bookmark: *r.Bookmark, Index: r.Index}
		}
	} else {
		a.cards = make([]Card, len(bookmarks))
		for i, b := range bookmarks {
			a.cards[i] = Card{Bookmark: b, Index: i}
		}
	}

	if a.cursor >= len(a.cards) {
		a.cursor = len(a.cards) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selectID moves the cursor to the card with the given bookmark ID.
func (a *App) selectID(id string) {
	for i, c := range a.cards {
		if c.Bookmark.ID == id {
			a.cursor = i
			return
		}
	}
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Right):
		if a.cursor < len(a.cards)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Left):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor+a.columns < len(a.cards) {
			a.cursor += a.columns
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor-a.columns >= 0 {
			a.cursor -= a.columns
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.cards) > 0 {
			a.cursor = len(a.cards) - 1
		}

	case key.Matches(msg, a.keys.Cancel):
		if a.filter.Query != "" {
			a.filter.Reset()
			a.refreshCards()
		}

	case key.Matches(msg, a.keys.Open):
		if card, ok := a.Selected(); ok {
			a.log.Debug().Str("url", card.Bookmark.URL).Msg("opening bookmark")
			return a, a.openCmd(card.Bookmark.URL)
		}

	case key.Matches(msg, a.keys.YankURL):
		if card, ok := a.Selected(); ok {
			if err := a.copy(card.Bookmark.URL); err != nil {
				a.log.Warn().Err(err).Msg("clipboard write failed")
				a.setMessage(MessageError, "Clipboard unavailable")
			} else {
				a.setMessage(MessageSuccess, "Copied "+card.Bookmark.URL)
			}
		}

	case key.Matches(msg, a.keys.Add):
		a.add.Open()
		a.mode = ModeAdd
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if card, ok := a.Selected(); ok {
			a.pendingDelete = card.Bookmark.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.RefreshImg):
		if card, ok := a.Selected(); ok && a.images != nil {
			a.setMessage(MessageInfo, "Fetching icon for "+card.Bookmark.Title+"...")
			return a, a.cardIconCmd(card.Bookmark)
		}

	case key.Matches(msg, a.keys.Settings):
		a.settings.ColumnsInput.SetValue(strconv.Itoa(a.columns))
		a.settings.ColumnsInput.CursorEnd()
		a.settings.Err = ""
		a.mode = ModeSettings
		cmd := a.settings.ColumnsInput.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.WebSearch):
		if a.searcher == nil {
			a.setMessage(MessageWarning, "Web search is not configured")
			return a, nil
		}
		a.webSearch.Input.Reset()
		a.mode = ModeWebSearch
		cmd := a.webSearch.Input.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.Filter):
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		a.mode = ModeFilter
		cmd := a.filter.Input.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.add.Close()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		return a.submitAdd()

	case key.Matches(msg, a.keys.FetchImage):
		a.add.Sync()
		cmd := a.fetchPreviewCmd()
		return a, cmd

	case key.Matches(msg, a.keys.NextField):
		return a.moveAddFocus(1)

	case key.Matches(msg, a.keys.PrevField):
		return a.moveAddFocus(-1)
	}

	var cmd tea.Cmd
	a.add.Inputs[a.add.Focus], cmd = a.add.Inputs[a.add.Focus].Update(msg)
	return a, cmd
}

// moveAddFocus changes the focused field. Leaving the URL field starts the
// site icon and page title lookups the form still needs.
func (a App) moveAddFocus(delta int) (tea.Model, tea.Cmd) {
	prev := a.add.MoveFocus(delta)
	a.add.Sync()
	if prev != FieldURL {
		return a, nil
	}

	siteURL := strings.TrimSpace(a.add.Form.URL)
	if siteURL == "" || a.images == nil {
		return a, nil
	}

	var cmds []tea.Cmd
	if a.add.Form.NeedsIcon() {
		gen := a.add.Form.BeginFetch()
		cmds = append(cmds, a.siteIconCmd(gen, siteURL, false))
	}
	if a.add.Form.NeedsTitle() {
		cmds = append(cmds, a.pageTitleCmd(a.add.Form.Generation(), siteURL))
	}
	return a, tea.Batch(cmds...)
}

// fetchPreviewCmd runs the fetch-image action: the image URL if one is set,
// otherwise the site icon.
func (a *App) fetchPreviewCmd() tea.Cmd {
	target, icon, ok := a.add.Form.FetchTarget()
	if !ok || a.images == nil {
		return nil
	}
	gen := a.add.Form.BeginFetch()
	if icon {
		return a.siteIconCmd(gen, target, true)
	}
	return a.fetchImageCmd(gen, target)
}

func (a App) submitAdd() (tea.Model, tea.Cmd) {
	a.add.Sync()
	res, params, err := a.add.Form.Submit()
	if errors.Is(err, compose.ErrMissingURL) {
		a.setMessage(MessageError, "URL is required")
		return a, nil
	}
	if res == compose.NeedsConfirmation {
		// The modal shows the missing-image warning; the next Enter proceeds.
		return a, nil
	}

	b, err := a.session.Add(params)
	if b.ID == "" {
		a.setMessage(MessageError, err.Error())
		return a, nil
	}

	a.add.Close()
	a.mode = ModeNormal
	a.refreshCards()
	a.selectID(b.ID)

	if err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
	} else {
		a.setMessage(MessageSuccess, "Added "+b.Title)
	}
	return a, nil
}

func (a App) handleImage(msg imageMsg) App {
	if msg.explicit && msg.image == "" {
		if a.add.Form.FailImage(msg.gen) {
			a.setMessage(MessageWarning, "No image found")
		}
		return a
	}
	a.add.Form.ApplyImage(msg.gen, msg.image)
	return a
}

func (a App) handleTitle(msg titleMsg) App {
	a.add.Sync()
	if a.add.Form.ApplyTitle(msg.gen, msg.title) {
		a.add.Inputs[FieldTitle].SetValue(msg.title)
	}
	return a
}

func (a App) handleCardImage(msg cardImageMsg) App {
	if msg.image == "" {
		a.setMessage(MessageWarning, "No icon found for "+msg.url)
		return a
	}
	if err := a.session.SetImage(msg.id, msg.image); err != nil {
		if errors.Is(err, model.ErrBookmarkNotFound) {
			return a
		}
		a.setMessage(MessageError, "Save failed: "+err.Error())
	} else {
		a.setMessage(MessageSuccess, "Icon updated")
	}
	a.refreshCards()
	return a
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm), msg.String() == "y":
		removed, err := a.session.Delete(a.pendingDelete)
		a.pendingDelete = ""
		a.mode = ModeNormal
		a.refreshCards()
		switch {
		case errors.Is(err, model.ErrBookmarkNotFound):
			a.setMessage(MessageWarning, "Bookmark no longer exists")
		case err != nil:
			a.setMessage(MessageError, "Save failed: "+err.Error())
		default:
			a.setMessage(MessageSuccess, "Deleted "+removed.Title)
		}

	case key.Matches(msg, a.keys.Cancel), msg.String() == "n":
		a.pendingDelete = ""
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.settings.ColumnsInput.Blur()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		columns, err := strconv.Atoi(strings.TrimSpace(a.settings.ColumnsInput.Value()))
		if err != nil || !model.ValidColumns(columns) {
			// Invalid input keeps the dialog open
			a.settings.Err = fmt.Sprintf("Columns must be a number from %d to %d", model.MinColumns, model.MaxColumns)
			return a, nil
		}

		err = a.session.UpdateSettings(columns)
		a.settings.ColumnsInput.Blur()
		a.mode = ModeNormal
		a.refreshCards()
		if err != nil {
			a.setMessage(MessageError, "Save failed: "+err.Error())
		} else {
			a.setMessage(MessageSuccess, "Columns set to "+strconv.Itoa(columns))
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.ColumnsInput, cmd = a.settings.ColumnsInput.Update(msg)
	return a, cmd
}

func (a App) updateWebSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.webSearch.Input.Blur()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		query := strings.TrimSpace(a.webSearch.Input.Value())
		a.webSearch.Input.Blur()
		a.mode = ModeNormal
		if query == "" {
			return a, nil
		}
		a.setMessage(MessageInfo, "Searching the web for "+query)
		return a, a.webSearchCmd(query)
	}

	var cmd tea.Cmd
	a.webSearch.Input, cmd = a.webSearch.Input.Update(msg)
	return a, cmd
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.filter.Reset()
		a.mode = ModeNormal
		a.refreshCards()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.filter.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	if q := a.filter.Input.Value(); q != a.filter.Query {
		a.filter.Query = q
		a.cursor = 0
		a.refreshCards()
	}
	return a, cmd
}
