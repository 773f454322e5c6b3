package layout

import "testing"

func TestCalculateGridHeight(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 18},                // 24 - 6 = 18
		{"large terminal", 50, 44},                 // 50 - 6 = 44
		{"small terminal enforces one card", 8, 4}, // 8 - 6 = 2, min is card height
		{"terminal smaller than reduction", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGridHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateGridHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateCardWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name          string
		terminalWidth int
		columns       int
		want          int
	}{
		{"five columns at 80", 80, 5, 14},     // (80-4-4)/5 = 14
		{"one column", 80, 1, 76},             // 80-4
		{"three columns at 120", 120, 3, 38},  // (120-4-2)/3 = 38
		{"thirty columns enforce min", 80, 30, 8},
		{"zero columns treated as one", 80, 0, 76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCardWidth(tt.terminalWidth, tt.columns, cfg)
			if got != tt.want {
				t.Errorf("CalculateCardWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.columns, got, tt.want)
			}
		})
	}
}

func TestCalculateCardWidth_FitsTerminal(t *testing.T) {
	cfg := DefaultConfig().Grid

	for columns := 1; columns <= 30; columns++ {
		width := CalculateCardWidth(200, columns, cfg)
		total := width*columns + cfg.Gap*(columns-1) + cfg.WidthReduction
		if width > cfg.MinCardWidth && total > 200 {
			t.Errorf("%d columns of width %d overflow 200 (total %d)", columns, width, total)
		}
	}
}

func TestCalculateCardContentWidth(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		cardWidth int
		want      int
	}{
		{14, 10},
		{8, 4},
		{4, 1},
		{2, 1},
	}

	for _, tt := range tests {
		got := CalculateCardContentWidth(tt.cardWidth, cfg)
		if got != tt.want {
			t.Errorf("CalculateCardContentWidth(%d) = %d, want %d", tt.cardWidth, got, tt.want)
		}
	}
}

func TestCalculateVisibleRows(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		gridHeight int
		want       int
	}{
		{18, 4},
		{16, 4},
		{4, 1},
		{3, 1},
	}

	for _, tt := range tests {
		got := CalculateVisibleRows(tt.gridHeight, cfg)
		if got != tt.want {
			t.Errorf("CalculateVisibleRows(%d) = %d, want %d", tt.gridHeight, got, tt.want)
		}
	}
}

func TestRowCountAndCellOf(t *testing.T) {
	tests := []struct {
		count, columns int
		wantRows       int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 1, 11},
	}

	for _, tt := range tests {
		if got := RowCount(tt.count, tt.columns); got != tt.wantRows {
			t.Errorf("RowCount(%d, %d) = %d, want %d", tt.count, tt.columns, got, tt.wantRows)
		}
	}

	row, col := CellOf(7, 5)
	if row != 1 || col != 2 {
		t.Errorf("CellOf(7, 5) = (%d, %d), want (1, 2)", row, col)
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all rows visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
