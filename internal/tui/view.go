package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/tui/layout"
)

// renderView creates the complete grid view.
func (a App) renderView() string {
	// ModeFilter stays inline, everything else is a modal
	if a.mode != ModeNormal && a.mode != ModeFilter {
		return a.renderModal()
	}

	header := a.renderHeader()
	grid := a.renderGrid()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, grid, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title line above the grid.
func (a App) renderHeader() string {
	var header strings.Builder
	header.WriteString(a.styles.Title.Render("tabgrid"))
	header.WriteString(" ")

	total := 0
	if a.session != nil {
		total = a.session.Len()
	}
	count := strconv.Itoa(total)
	if a.filter.Query != "" {
		count = fmt.Sprintf("%d/%d", len(a.cards), total)
	}
	header.WriteString(a.styles.Header.Render(fmt.Sprintf("%s  [cols:%d]", count, a.columns)))

	if a.mode == ModeFilter {
		header.WriteString("  /" + a.filter.Input.View())
	} else if a.filter.Query != "" {
		header.WriteString(a.styles.Header.Render("  /" + a.filter.Query))
	}

	return header.String()
}

// renderGrid renders the visible rows of cards around the cursor.
func (a App) renderGrid() string {
	gridHeight := layout.CalculateGridHeight(a.height, a.layoutConfig.Grid)

	if len(a.cards) == 0 {
		text := "No bookmarks yet. Press a to add one."
		if a.filter.Query != "" {
			text = "No matches for \"" + a.filter.Query + "\""
		}
		return lipgloss.NewStyle().Height(gridHeight).Render(a.styles.Empty.Render(text))
	}

	cardWidth := layout.CalculateCardWidth(a.width, a.columns, a.layoutConfig.Grid)
	totalRows := layout.RowCount(len(a.cards), a.columns)
	visibleRows := layout.CalculateVisibleRows(gridHeight, a.layoutConfig.Grid)
	cursorRow, _ := layout.CellOf(a.cursor, a.columns)
	offset := layout.CalculateViewportOffset(cursorRow, totalRows, visibleRows)

	gap := strings.Repeat(" ", a.layoutConfig.Grid.Gap)
	rows := make([]string, 0, visibleRows)
	for row := offset; row < totalRows && row < offset+visibleRows; row++ {
		start := row * a.columns
		end := min(start+a.columns, len(a.cards))

		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, a.renderCard(a.cards[i], i == a.cursor, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.NewStyle().Height(gridHeight).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCard renders one bookmark card: a thumbnail line and a numbered title.
func (a App) renderCard(card Card, selected bool, cardWidth int) string {
	contentWidth := layout.CalculateCardContentWidth(cardWidth, a.layoutConfig.Grid)

	var thumb string
	if card.Bookmark.HasImage() {
		marker, _ := layout.TruncateText("[img]", contentWidth, a.layoutConfig.Text)
		thumb = a.styles.Thumb.Render(layout.CenterText(marker, contentWidth))
	} else {
		placeholder, _ := layout.TruncateText(card.Bookmark.Placeholder(), contentWidth, a.layoutConfig.Text)
		thumb = a.styles.Placeholder.Render(layout.CenterText(placeholder, contentWidth))
	}

	prefix := strconv.Itoa(card.Index+1) + " "
	title, _ := layout.TruncateWithPrefixSuffix(card.Bookmark.Title, contentWidth, prefix, "", a.layoutConfig.Text)
	title = a.styles.CardTitle.Render(title)

	style := a.styles.Card
	if selected {
		style = a.styles.CardSelected
	}
	// lipgloss widths include padding but not the border
	return style.Width(cardWidth - 2).Render(thumb + "\n" + title)
}

// renderModal renders the active dialog centered over the screen.
func (a App) renderModal() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	var title, content strings.Builder
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)

	switch a.mode {
	case ModeAdd:
		modalWidth = layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.LargeWidthPercent, a.layoutConfig.Modal)
		title.WriteString("Add Bookmark\n\n")
		content.WriteString(a.renderAddForm())

	case ModeConfirmDelete:
		name := a.pendingDelete
		if b, ok := a.session.Bookmark(a.pendingDelete); ok {
			name = b.Title
		}
		title.WriteString("Delete bookmark?\n\n")
		content.WriteString(a.styles.Label.Render(name) + "\n\n")
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeSettings:
		title.WriteString("Settings\n\n")
		content.WriteString(fmt.Sprintf("Columns (%d-%d):\n", model.MinColumns, model.MaxColumns))
		content.WriteString(a.settings.ColumnsInput.View())
		if a.settings.Err != "" {
			content.WriteString("\n\n" + a.styles.Warning.Render(a.settings.Err))
		}

	case ModeWebSearch:
		title.WriteString("Web Search\n\n")
		content.WriteString(a.webSearch.Input.View())
	}

	modal := a.styles.Modal.Width(modalWidth).Render(
		a.styles.Title.Render(title.String()) + content.String(),
	)

	helpBar := a.renderHelpBar()
	body := lipgloss.JoinVertical(lipgloss.Center, modal, helpBar)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

// renderAddForm renders the add dialog fields and the thumbnail preview.
func (a App) renderAddForm() string {
	var content strings.Builder
	labels := [fieldCount]string{"URL:", "Title:", "Image URL:"}

	for i, input := range a.add.Inputs {
		label := labels[i]
		if i == a.add.Focus {
			label = a.styles.Title.Render(label)
		} else {
			label = a.styles.Label.Render(label)
		}
		content.WriteString(label + "\n")
		content.WriteString(input.View())
		content.WriteString("\n\n")
	}

	content.WriteString(a.styles.Label.Render("Preview: "))
	switch {
	case a.add.Form.Loading():
		content.WriteString(a.styles.Help.Render("Loading..."))
	case a.add.Form.Image() != "":
		content.WriteString(a.styles.Thumb.Render("[img] thumbnail ready"))
	default:
		content.WriteString(a.styles.Help.Render("No image"))
	}

	if a.add.Form.Warned() {
		content.WriteString("\n\n")
		content.WriteString(a.styles.Warning.Render("No image. Press Enter again to save."))
	}

	return content.String()
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	hints := a.renderHints(a.getContextualHints())
	if hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = a.styles.Warning
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = a.styles.Title
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the full keybinding reference.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/l  left/right\n")
	left.WriteString("j/k  down/up\n")
	left.WriteString("gg   first\n")
	left.WriteString("G    last\n")
	left.WriteString("/    filter\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("Enter open url\n")
	left.WriteString("y    yank url\n")
	left.WriteString("s    web search\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add bookmark\n")
	right.WriteString("d    delete\n")
	right.WriteString("r    refresh icon\n")
	right.WriteString(",    columns\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("add dialog") + "\n")
	right.WriteString("Tab  next field\n")
	right.WriteString("C-f  fetch image\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
