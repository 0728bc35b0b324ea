package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"roughlab/internal/decision"
)

// StaticTable renders a decision table as aligned columns. It is the
// read-only counterpart of the entry grid, used on the results page and
// by the inspection commands.
type StaticTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// DecisionCol marks the column rendered with the decision style,
	// -1 for none.
	DecisionCol int
}

// NewStaticTable creates an empty table with the given title and headers.
func NewStaticTable(title string, headers []string) *StaticTable {
	return &StaticTable{
		Title:       title,
		Headers:     headers,
		Rows:        make([][]string, 0),
		DecisionCol: -1,
	}
}

// FromDecisionTable builds a StaticTable view of a decision table,
// with an object id column in front and the decision column last.
func FromDecisionTable(title string, tbl *decision.Table) *StaticTable {
	attrs := tbl.Attributes()
	headers := make([]string, 0, len(attrs)+2)
	headers = append(headers, "#")
	headers = append(headers, attrs...)
	headers = append(headers, tbl.DecisionName())

	st := NewStaticTable(title, headers)
	st.DecisionCol = len(headers) - 1

	for _, id := range tbl.IDs() {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(id))
		for _, a := range attrs {
			v, _ := tbl.Value(id, a)
			row = append(row, v)
		}
		row = append(row, tbl.Decision(id))
		st.AddRow(row...)
	}
	return st
}

// AddRow adds a row to the table.
func (t *StaticTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *StaticTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column widths from headers and cells.
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// Account for the cell padding.
	for i := range colWidths {
		colWidths[i] += 2
	}

	headStyle := styles.ColumnHead
	cellStyle := styles.Cell
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		hs := headStyle
		if i == t.DecisionCol {
			hs = styles.DecisionHead
		}
		sb.WriteString(hs.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(cellStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
