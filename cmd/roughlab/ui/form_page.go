package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TableBounds limits what the entry form accepts.
type TableBounds struct {
	MinObjects    int
	MaxObjects    int
	MinAttributes int
	MaxAttributes int
	DecisionName  string
}

// Form field indices.
const (
	fieldObjects = iota
	fieldAttributes
	fieldDecision
	fieldCount
)

// DimensionsModel is the first page of the lab: how big is the table.
type DimensionsModel struct {
	width  int
	height int
	styles Styles
	bounds TableBounds

	inputs []textinput.Model
	focus  int
	errMsg string
	done   bool
}

// NewDimensionsModel creates the dimension form with the lab defaults
// (6 objects, 3 attributes).
func NewDimensionsModel(styles Styles, bounds TableBounds) DimensionsModel {
	if bounds.DecisionName == "" {
		bounds.DecisionName = "Decision"
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 24
		ti.Width = 12
		ti.PromptStyle = styles.Prompt
		ti.TextStyle = styles.UserInput
		inputs[i] = ti
	}
	inputs[fieldObjects].SetValue("6")
	inputs[fieldAttributes].SetValue("3")
	inputs[fieldDecision].SetValue(bounds.DecisionName)
	inputs[fieldObjects].Focus()

	return DimensionsModel{
		styles: styles,
		bounds: bounds,
		inputs: inputs,
	}
}

// Init initializes the model.
func (m DimensionsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m DimensionsModel) Update(msg tea.Msg) (DimensionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.focus < fieldCount-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			if err := m.validate(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.done = true
			return m, nil

		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *DimensionsModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	m.inputs[m.focus].CursorEnd()
}

func (m DimensionsModel) validate() error {
	if _, err := m.objectCount(); err != nil {
		return err
	}
	if _, err := m.attributeCount(); err != nil {
		return err
	}
	if strings.TrimSpace(m.inputs[fieldDecision].Value()) == "" {
		return fmt.Errorf("decision column needs a name")
	}
	return nil
}

func (m DimensionsModel) objectCount() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldObjects].Value()))
	if err != nil || n < m.bounds.MinObjects || n > m.bounds.MaxObjects {
		return 0, fmt.Errorf("number of rows must be between %d and %d", m.bounds.MinObjects, m.bounds.MaxObjects)
	}
	return n, nil
}

func (m DimensionsModel) attributeCount() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldAttributes].Value()))
	if err != nil || n < m.bounds.MinAttributes || n > m.bounds.MaxAttributes {
		return 0, fmt.Errorf("number of condition attributes must be between %d and %d", m.bounds.MinAttributes, m.bounds.MaxAttributes)
	}
	return n, nil
}

// Done reports whether the form was submitted with valid values.
func (m DimensionsModel) Done() bool { return m.done }

// Reset clears the submitted state so the form can be shown again.
func (m *DimensionsModel) Reset() {
	m.done = false
	m.errMsg = ""
	m.setFocus(fieldObjects)
}

// Values returns the validated dimensions. Only meaningful after Done.
func (m DimensionsModel) Values() (objects, attributes int, decisionName string) {
	objects, _ = m.objectCount()
	attributes, _ = m.attributeCount()
	decisionName = strings.TrimSpace(m.inputs[fieldDecision].Value())
	return objects, attributes, decisionName
}

// View renders the form.
func (m DimensionsModel) View() string {
	labels := [fieldCount]string{
		"Number of rows (objects)",
		"Number of condition attributes",
		"Decision column name",
	}
	hints := [fieldCount]string{
		fmt.Sprintf("(%d-%d)", m.bounds.MinObjects, m.bounds.MaxObjects),
		fmt.Sprintf("(%d-%d)", m.bounds.MinAttributes, m.bounds.MaxAttributes),
		"",
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("📐 Table Dimensions"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("Each row = object. Each column = attribute. Final column = Decision."))
	sb.WriteString("\n\n")

	labelStyle := m.styles.Body.Width(34)
	for i := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = m.styles.Prompt.Render("> ")
		}
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			marker,
			labelStyle.Render(labels[i]),
			m.inputs[i].View(),
			"  ",
			m.styles.Muted.Render(hints[i]),
		)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: continue • tab/↑/↓: move • ctrl+c: quit"))
	return sb.String()
}

// SetSize updates the size.
func (m *DimensionsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}
