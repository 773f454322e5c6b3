package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// StoreChangedMsg tells the app to re-read the session.
type StoreChangedMsg struct{}

// imageMsg carries a thumbnail for the add dialog of generation gen.
// explicit marks results of the fetch-image action, where an empty result
// clears the preview.
type imageMsg struct {
	gen      uint64
	image    string
	explicit bool
}

// titleMsg carries a fetched page title for the add dialog of generation gen.
type titleMsg struct {
	gen   uint64
	title string
}

// cardImageMsg carries a site icon fetched for an existing bookmark.
type cardImageMsg struct {
	id    string
	url   string
	image string
}

// openedMsg reports the outcome of handing a URL to the browser.
type openedMsg struct {
	url string
	err error
}

func (a App) siteIconCmd(gen uint64, siteURL string, explicit bool) tea.Cmd {
	images, ctx := a.images, a.ctx
	return func() tea.Msg {
		return imageMsg{gen: gen, image: images.SiteIcon(ctx, siteURL), explicit: explicit}
	}
}

func (a App) fetchImageCmd(gen uint64, imageURL string) tea.Cmd {
	images, ctx := a.images, a.ctx
	return func() tea.Msg {
		return imageMsg{gen: gen, image: images.FetchImage(ctx, imageURL), explicit: true}
	}
}

func (a App) pageTitleCmd(gen uint64, pageURL string) tea.Cmd {
	images, ctx := a.images, a.ctx
	return func() tea.Msg {
		return titleMsg{gen: gen, title: images.PageTitle(ctx, pageURL)}
	}
}

func (a App) cardIconCmd(b model.Bookmark) tea.Cmd {
	images, ctx := a.images, a.ctx
	return func() tea.Msg {
		return cardImageMsg{id: b.ID, url: b.URL, image: images.SiteIcon(ctx, b.URL)}
	}
}

func (a App) openCmd(rawURL string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		return openedMsg{url: rawURL, err: open(rawURL)}
	}
}

func (a App) webSearchCmd(query string) tea.Cmd {
	searcher := a.searcher
	return func() tea.Msg {
		searcher.Search(query)
		return nil
	}
}
