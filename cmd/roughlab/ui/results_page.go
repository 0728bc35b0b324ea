package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// ResultsModel is the analysis results page: a scrollable viewport over
// the markdown report.
type ResultsModel struct {
	width  int
	height int
	styles Styles

	viewport viewport.Model
	renderer *glamour.TermRenderer
	prefix   string
	markdown string
	ready    bool
}

// NewResultsModel creates the results viewer.
func NewResultsModel(styles Styles) ResultsModel {
	vp := viewport.New(80, 20)
	vp.SetContent("")

	return ResultsModel{
		styles:   styles,
		viewport: vp,
		renderer: newRenderer(styles, 80),
	}
}

func newRenderer(styles Styles, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	return renderer
}

// Init initializes the model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(ws.Width, ws.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetPrefix places pre-rendered content (the input table) above the
// markdown report.
func (m *ResultsModel) SetPrefix(s string) {
	m.prefix = s
	if m.ready {
		m.viewport.SetContent(m.content())
	}
}

// SetMarkdown renders the markdown report into the viewport.
func (m *ResultsModel) SetMarkdown(md string) {
	m.markdown = md
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
	m.ready = true
}

func (m *ResultsModel) content() string {
	if m.prefix == "" {
		return m.render()
	}
	return m.prefix + "\n" + m.render()
}

// render converts the stored markdown, falling back to plain text when
// glamour cannot handle it.
func (m *ResultsModel) render() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = m.markdown
		}
	}()

	if m.renderer != nil && m.markdown != "" {
		if rendered, err := m.renderer.Render(m.markdown); err == nil {
			return rendered
		}
	}
	return m.markdown
}

// View renders the page.
func (m ResultsModel) View() string {
	if !m.ready {
		return m.styles.Content.Render("No analysis yet.")
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("📌 Results"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("↑/↓/pgup/pgdn: scroll • e: edit table • n: new table • q: quit"))
	return sb.String()
}

// SetSize updates the size and re-wraps the report.
func (m *ResultsModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	m.viewport.Width = w - 2
	m.viewport.Height = h - 6
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}

	m.renderer = newRenderer(m.styles, w-8)
	if m.ready {
		m.viewport.SetContent(m.content())
	}
}
