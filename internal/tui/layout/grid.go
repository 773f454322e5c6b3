package layout

// CalculateGridHeight computes the height available for card rows.
// Returns at least one card height.
func CalculateGridHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.CardHeight {
		return cfg.CardHeight
	}
	return height
}

// CalculateCardWidth computes the outer width of each card so that columns
// cards plus the gaps between them fill the terminal width.
func CalculateCardWidth(terminalWidth, columns int, cfg GridConfig) int {
	if columns < 1 {
		columns = 1
	}
	usable := terminalWidth - cfg.WidthReduction - cfg.Gap*(columns-1)
	width := usable / columns
	if width < cfg.MinCardWidth {
		return cfg.MinCardWidth
	}
	return width
}

// CalculateCardContentWidth computes the width available for text inside a card.
func CalculateCardContentWidth(cardWidth int, cfg GridConfig) int {
	width := cardWidth - cfg.CardChrome
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleRows computes how many card rows fit in gridHeight.
func CalculateVisibleRows(gridHeight int, cfg GridConfig) int {
	rows := gridHeight / cfg.CardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

// RowCount returns the number of rows needed for count cards.
func RowCount(count, columns int) int {
	if count <= 0 || columns < 1 {
		return 0
	}
	return (count + columns - 1) / columns
}

// CellOf returns the row and column of the card at index.
func CellOf(index, columns int) (row, col int) {
	if columns < 1 {
		columns = 1
	}
	return index / columns, index % columns
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
