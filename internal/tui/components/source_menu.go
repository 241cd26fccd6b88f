package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/search"
	"github.com/mmcdole/skychart/internal/tui/styles"
)

// MenuHeader is the column header of the source menu
const MenuHeader = "Source | Trace | Type"

// menuRow binds a menu line to a source index fixed at construction
type menuRow struct {
	source int
}

// SourceMenu lists the catalog's sources with their trace toggle and type
type SourceMenu struct {
	rows  []menuRow
	index *search.SourceIndex

	cursor     int
	offset     int
	maxVisible int
	width      int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filtered     []search.FilterMatch // nil when no query
}

// NewSourceMenu builds one row per source, in catalog order
func NewSourceMenu(sources []domain.Source, maxVisible int) *SourceMenu {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Prompt = "/"
	ti.CharLimit = 40
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	if maxVisible < 1 {
		maxVisible = 1
	}

	m := &SourceMenu{
		rows:        make([]menuRow, len(sources)),
		index:       search.NewSourceIndex(sources),
		maxVisible:  maxVisible,
		width:       32,
		filterInput: ti,
	}
	for i := range sources {
		m.rows[i] = menuRow{source: i}
	}
	return m
}

// SetWidth sets the rendered width in cells
func (m *SourceMenu) SetWidth(width int) {
	if width < 16 {
		width = 16
	}
	m.width = width
	m.filterInput.Width = width - 4
}

// SetMaxVisible caps the number of rows shown at once
func (m *SourceMenu) SetMaxVisible(n int) {
	if n < 1 {
		n = 1
	}
	m.maxVisible = n
	m.ensureVisible()
}

// ItemCount returns the number of rows currently listed
func (m *SourceMenu) ItemCount() int {
	if m.filtered != nil {
		return len(m.filtered)
	}
	return len(m.rows)
}

// mapIndex maps a listed position to its menu row
func (m *SourceMenu) mapIndex(i int) menuRow {
	if m.filtered != nil {
		return m.rows[m.filtered[i].Index]
	}
	return m.rows[i]
}

// Selected returns the source index under the cursor
func (m *SourceMenu) Selected() (int, bool) {
	if m.ItemCount() == 0 {
		return -1, false
	}
	return m.mapIndex(m.cursor).source, true
}

// Cursor returns the cursor's listed position
func (m *SourceMenu) Cursor() int { return m.cursor }

// SelectSource moves the cursor to the row of a source if it is listed
func (m *SourceMenu) SelectSource(source int) bool {
	for i := 0; i < m.ItemCount(); i++ {
		if m.mapIndex(i).source == source {
			m.cursor = i
			m.ensureVisible()
			return true
		}
	}
	return false
}

// MoveUp moves the cursor up one row
func (m *SourceMenu) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.ensureVisible()
	}
}

// MoveDown moves the cursor down one row
func (m *SourceMenu) MoveDown() {
	if m.cursor < m.ItemCount()-1 {
		m.cursor++
		m.ensureVisible()
	}
}

// Home moves to the first row
func (m *SourceMenu) Home() {
	m.cursor = 0
	m.ensureVisible()
}

// End moves to the last row
func (m *SourceMenu) End() {
	if n := m.ItemCount(); n > 0 {
		m.cursor = n - 1
	}
	m.ensureVisible()
}

func (m *SourceMenu) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxVisible {
		m.offset = m.cursor - m.maxVisible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// === Filter ===

// ToggleFilter activates the filter input
func (m *SourceMenu) ToggleFilter() tea.Cmd {
	m.filterActive = true
	return m.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (m *SourceMenu) IsFiltering() bool {
	return m.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (m *SourceMenu) IsFilterTyping() bool {
	return m.filterActive && m.filterInput.Focused()
}

// CommitFilter stops typing but keeps the filtered rows
func (m *SourceMenu) CommitFilter() {
	m.filterInput.Blur()
	if m.filterQuery == "" {
		m.ClearFilter()
	}
}

// ClearFilter deactivates the filter and lists every source
func (m *SourceMenu) ClearFilter() {
	selected, ok := m.Selected()
	m.filterActive = false
	m.filterQuery = ""
	m.filtered = nil
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	if !ok || !m.SelectSource(selected) {
		m.Home()
	}
}

// Update feeds key input to the filter while typing
func (m *SourceMenu) Update(msg tea.Msg) tea.Cmd {
	if !m.IsFilterTyping() {
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.filterQuery {
		m.applyFilter(q)
	}
	return cmd
}

func (m *SourceMenu) applyFilter(query string) {
	m.filterQuery = query
	if strings.TrimSpace(query) == "" {
		m.filtered = nil
	} else {
		m.filtered = m.index.Filter(query)
	}
	// Reset cursor to first match
	m.cursor = 0
	m.offset = 0
}

// === Rendering ===

// View renders the menu against the current catalog state
func (m *SourceMenu) View(catalog domain.Catalog) string {
	var lines []string
	lines = append(lines, styles.TitleStyle.Render(MenuHeader))

	if m.filterActive {
		bar := m.filterInput.View()
		if m.filterQuery != "" {
			bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", m.ItemCount(), len(m.rows)))
		}
		lines = append(lines, bar)
	}

	if m.offset > 0 {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  ↑ %d more", m.offset)))
	}

	end := m.offset + m.maxVisible
	if end > m.ItemCount() {
		end = m.ItemCount()
	}
	for i := m.offset; i < end; i++ {
		row := m.mapIndex(i)
		if row.source >= len(catalog.Sources) {
			continue
		}
		var matched []int
		if m.filtered != nil {
			matched = m.filtered[i].MatchedIndexes
		}
		lines = append(lines, m.renderRow(catalog, row.source, matched, i == m.cursor))
	}

	if rest := m.ItemCount() - end; rest > 0 {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", rest)))
	}
	if m.ItemCount() == 0 {
		lines = append(lines, styles.DimStyle.Render("  no matching sources"))
	}

	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m *SourceMenu) renderRow(catalog domain.Catalog, index int, matched []int, selected bool) string {
	src := catalog.Sources[index]

	check := styles.UncheckedChar
	if src.Visible {
		check = styles.CheckedChar
	}
	typ := catalog.Type(src)
	suffix := fmt.Sprintf(" %s %d ", check, src.TypeIndex)

	// cursor + space + name + suffix + swatch
	nameWidth := m.width - 2 - lipgloss.Width(suffix) - 1
	name := truncate(src.Name, nameWidth)
	pad := strings.Repeat(" ", max(0, nameWidth-lipgloss.Width(name)))

	cursor := " "
	style := styles.NormalItemStyle
	if selected {
		cursor = styles.CursorChar
		style = styles.SelectedItemStyle
	}

	return style.Render(cursor+" ") +
		highlight(name, matched, style) +
		style.Render(pad+suffix) +
		styles.Swatch(typ.FillColor)
}

// highlight styles the matched rune positions of s
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if hits[i] {
			b.WriteString(styles.MatchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
