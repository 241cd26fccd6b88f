package tui

// Layout constants
const (
	// Right-hand side panel
	MinSideWidth = 28
	MaxSideWidth = 40

	TimePanelHeight = 4
	// Menu chrome: header + filter bar + two scroll indicators
	MenuChromeHeight = 4

	// Vertical layout: single footer line
	ChromeHeight = 1

	MinChartCols = 10
)

// layout holds the computed panel sizes for one terminal size
type layout struct {
	chartCols int
	chartRows int
	sideWidth int
	menuRows  int
}

// calculateLayout splits the terminal between chart and side panel
func (m Model) calculateLayout() layout {
	side := m.Width / 3
	if side < MinSideWidth {
		side = MinSideWidth
	}
	if side > MaxSideWidth {
		side = MaxSideWidth
	}

	cols := m.Width - side - 1
	if cols < MinChartCols {
		cols = MinChartCols
	}
	rows := m.Height - ChromeHeight
	if rows < 1 {
		rows = 1
	}

	menuRows := rows - TimePanelHeight - 1 - MenuChromeHeight
	if menuRows > m.menuRows {
		menuRows = m.menuRows
	}
	if menuRows < 1 {
		menuRows = 1
	}

	return layout{chartCols: cols, chartRows: rows, sideWidth: side, menuRows: menuRows}
}

// updateLayout pushes computed sizes into the components
func (m *Model) updateLayout() {
	l := m.calculateLayout()
	m.Menu.SetWidth(l.sideWidth)
	m.Menu.SetMaxVisible(l.menuRows)
	m.Help.Width = m.Width
}
