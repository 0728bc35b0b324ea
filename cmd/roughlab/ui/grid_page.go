package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"roughlab/internal/decision"
)

// GridModel is the table entry page. Row 0 holds the editable condition
// attribute names; rows 1..n hold one object each, with the decision
// value in the last column.
type GridModel struct {
	width  int
	height int
	styles Styles

	decisionName string
	headers      []string   // condition attribute names
	cells        [][]string // objects x (attributes + decision)

	input  textinput.Model
	row    int // 0 = header row
	col    int
	errMsg string
}

// NewGridModel creates an empty grid with default attribute names A1..An.
func NewGridModel(styles Styles, objects, attributes int, decisionName string) GridModel {
	if decisionName == "" {
		decisionName = decision.DefaultDecisionName
	}

	headers := make([]string, attributes)
	for i := range headers {
		headers[i] = fmt.Sprintf("A%d", i+1)
	}

	cells := make([][]string, objects)
	for i := range cells {
		cells[i] = make([]string, attributes+1)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 10
	ti.TextStyle = styles.UserInput
	ti.Focus()

	m := GridModel{
		styles:       styles,
		decisionName: decisionName,
		headers:      headers,
		cells:        cells,
		input:        ti,
	}
	m.loadCell()
	return m
}

// Init initializes the model.
func (m GridModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "tab":
			m.commitCell()
			m.moveNext()
			return m, nil
		case "shift+tab":
			m.commitCell()
			m.movePrev()
			return m, nil
		case "right":
			if m.input.Position() == len(m.input.Value()) {
				m.commitCell()
				m.moveNext()
				return m, nil
			}
		case "left":
			if m.input.Position() == 0 {
				m.commitCell()
				m.movePrev()
				return m, nil
			}
		case "up":
			m.commitCell()
			m.moveVertical(-1)
			return m, nil
		case "down":
			m.commitCell()
			m.moveVertical(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// columnsIn returns how many editable columns a row has. The decision
// header is fixed, so the header row is one column short.
func (m GridModel) columnsIn(row int) int {
	if row == 0 {
		return len(m.headers)
	}
	return len(m.headers) + 1
}

func (m *GridModel) commitCell() {
	v := strings.TrimSpace(m.input.Value())
	if m.row == 0 {
		m.headers[m.col] = v
		return
	}
	m.cells[m.row-1][m.col] = v
}

func (m *GridModel) loadCell() {
	v := ""
	if m.row == 0 {
		v = m.headers[m.col]
	} else {
		v = m.cells[m.row-1][m.col]
	}
	m.input.SetValue(v)
	m.input.CursorEnd()
}

func (m *GridModel) moveNext() {
	m.col++
	if m.col >= m.columnsIn(m.row) {
		m.col = 0
		m.row++
		if m.row > len(m.cells) {
			m.row = 0
		}
	}
	m.loadCell()
}

func (m *GridModel) movePrev() {
	m.col--
	if m.col < 0 {
		m.row--
		if m.row < 0 {
			m.row = len(m.cells)
		}
		m.col = m.columnsIn(m.row) - 1
	}
	m.loadCell()
}

func (m *GridModel) moveVertical(delta int) {
	row := m.row + delta
	if row < 0 || row > len(m.cells) {
		return
	}
	m.row = row
	if max := m.columnsIn(m.row) - 1; m.col > max {
		m.col = max
	}
	m.loadCell()
}

// Objects returns the number of object rows.
func (m GridModel) Objects() int { return len(m.cells) }

// Attributes returns the number of condition attributes.
func (m GridModel) Attributes() int { return len(m.headers) }

// DecisionName returns the decision column name.
func (m GridModel) DecisionName() string { return m.decisionName }

// SetError surfaces a table construction error on the grid page.
func (m *GridModel) SetError(msg string) { m.errMsg = msg }

// ClearError removes a previously surfaced error.
func (m *GridModel) ClearError() { m.errMsg = "" }

// SetHeader overwrites an attribute name, for prefilled grids.
func (m *GridModel) SetHeader(i int, name string) {
	if i >= 0 && i < len(m.headers) {
		m.headers[i] = name
		if m.row == 0 && m.col == i {
			m.loadCell()
		}
	}
}

// SetCell overwrites an object cell, for prefilled grids. Column
// Attributes() is the decision value.
func (m *GridModel) SetCell(object, col int, value string) {
	if object < 1 || object > len(m.cells) {
		return
	}
	if col < 0 || col > len(m.headers) {
		return
	}
	m.cells[object-1][col] = value
	if m.row == object && m.col == col {
		m.loadCell()
	}
}

// Table commits the cell under the cursor and builds the validated
// decision table from the grid.
func (m *GridModel) Table() (*decision.Table, error) {
	m.commitCell()
	m.loadCell()

	rows := make([]map[string]string, len(m.cells))
	for i, cell := range m.cells {
		row := make(map[string]string, len(m.headers)+1)
		for j, name := range m.headers {
			row[name] = cell[j]
		}
		row[m.decisionName] = cell[len(m.headers)]
		rows[i] = row
	}
	return decision.New(m.headers, m.decisionName, rows)
}

// View renders the grid.
func (m GridModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("📋 Fill Decision Table"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d objects × %d condition attributes, decision column %q", len(m.cells), len(m.headers), m.decisionName)))
	sb.WriteString("\n\n")

	widths := m.columnWidths()

	// Header row: row label gutter, editable attribute names, fixed
	// decision header.
	sb.WriteString(m.styles.RowLabel.Width(4).Render("#"))
	for j := range m.headers {
		sb.WriteString(m.renderCell(0, j, widths[j]))
	}
	sb.WriteString(m.styles.DecisionHead.Width(widths[len(m.headers)]).Render(m.decisionName))
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(4 + sum(widths)))
	sb.WriteString("\n")

	for i := 1; i <= len(m.cells); i++ {
		sb.WriteString(m.styles.RowLabel.Width(4).Render(strconv.Itoa(i)))
		for j := 0; j <= len(m.headers); j++ {
			sb.WriteString(m.renderCell(i, j, widths[j]))
		}
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter/tab: next cell • arrows: move • ctrl+r: run analysis • esc: back • ctrl+c: quit"))
	return sb.String()
}

// renderCell renders one grid slot; the slot under the cursor shows the
// live text input.
func (m GridModel) renderCell(row, col, width int) string {
	if row == m.row && col == m.col {
		return m.styles.CellFocused.Width(width).Render(m.input.View())
	}

	v := ""
	style := m.styles.Cell
	if row == 0 {
		v = m.headers[col]
		style = m.styles.ColumnHead
	} else {
		v = m.cells[row-1][col]
	}
	if v == "" {
		v = "·"
		style = m.styles.CellEmpty
	}
	return style.Width(width).Render(v)
}

// columnWidths sizes each column to its widest entry.
func (m GridModel) columnWidths() []int {
	widths := make([]int, len(m.headers)+1)
	for j, h := range m.headers {
		widths[j] = lipgloss.Width(h)
	}
	widths[len(m.headers)] = lipgloss.Width(m.decisionName)

	for _, row := range m.cells {
		for j, v := range row {
			if w := lipgloss.Width(v); w > widths[j] {
				widths[j] = w
			}
		}
	}
	for j := range widths {
		if widths[j] < 8 {
			widths[j] = 8
		}
		widths[j] += 2
	}
	return widths
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

// SetSize updates the size.
func (m *GridModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}
