// Package picker is a small standalone list for choosing one bookmark out of
// search results from the command line.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/search"
	"github.com/nikbrunner/tabgrid/internal/tui/layout"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"})

	matchStyle = lipgloss.NewStyle().
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(subtle)

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)
)

// linesPerResult is the rendered height of one entry: title and URL.
const linesPerResult = 2

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

// Picker is a bubbletea model listing search results.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
	text      layout.TextConfig
}

// New creates a Picker over results, best match first.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
		text:    layout.DefaultConfig().Text,
	}
}

// Run shows the picker and blocks until the user chooses or cancels.
// A nil bookmark means the user cancelled.
func Run(results []search.SearchResult, query string) (*model.Bookmark, error) {
	final, err := tea.NewProgram(New(results, query)).Run()
	if err != nil {
		return nil, err
	}
	return final.(Picker).SelectedBookmark(), nil
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, keys.Choose):
			if len(p.results) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

// visibleResults returns how many entries fit between header and footer.
func (p Picker) visibleResults() int {
	// header, blank, blank, footer
	n := (p.height - 4) / linesPerResult
	if n < 1 {
		return 1
	}
	return n
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	visible := p.visibleResults()
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), visible)
	end := min(offset+visible, len(p.results))

	textWidth := max(p.width-4, 1)
	for i := offset; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := highlight(result, style, textWidth, p.text)
		link, _ := layout.TruncateText(result.Bookmark.URL, textWidth-1, p.text)

		b.WriteString(cursor + title + "\n")
		b.WriteString("   " + urlStyle.Render(link) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(urlStyle.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlight renders the numbered title with matched characters underlined.
func highlight(result search.SearchResult, style lipgloss.Style, width int, cfg layout.TextConfig) string {
	prefix := fmt.Sprintf("%d ", result.Index+1)
	title, truncated := layout.TruncateWithPrefixSuffix(result.Bookmark.Title, width, prefix, "", cfg)
	if truncated || len(result.MatchedIndexes) == 0 {
		return style.Render(title)
	}

	matched := make(map[int]bool, len(result.MatchedIndexes))
	for _, idx := range result.MatchedIndexes {
		matched[idx] = true
	}

	var out strings.Builder
	out.WriteString(style.Render(prefix))
	// MatchedIndexes are byte offsets into the title
	for i, r := range result.Bookmark.Title {
		if matched[i] {
			out.WriteString(style.Inherit(matchStyle).Render(string(r)))
		} else {
			out.WriteString(style.Render(string(r)))
		}
	}
	return out.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
