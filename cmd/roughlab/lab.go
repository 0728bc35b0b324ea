// This file implements the interactive lab interface using bubbletea.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"roughlab/cmd/roughlab/ui"
	"roughlab/internal/articulation"
	"roughlab/internal/config"
	"roughlab/internal/decision"
	"roughlab/internal/rough"
	"roughlab/internal/verification"
)

// labPhase names the current lab screen.
type labPhase int

const (
	phaseDimensions labPhase = iota
	phaseGrid
	phaseResults
)

// labModel is the main model for the interactive lab interface
type labModel struct {
	// UI Components
	form    ui.DimensionsModel
	grid    ui.GridModel
	results ui.ResultsModel
	spinner spinner.Model
	styles  ui.Styles

	// State
	cfg       *config.Config
	phase     labPhase
	analyzing bool
	hasGrid   bool
	width     int
	height    int
	ready     bool
}

// Messages for tea updates
type (
	analysisDoneMsg struct {
		table    *decision.Table
		markdown string
	}
	analysisErrMsg struct{ err error }
)

// initLab initializes the interactive lab model
func initLab(cfg *config.Config) labModel {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	bounds := ui.TableBounds{
		MinObjects:    cfg.Table.MinObjects,
		MaxObjects:    cfg.Table.MaxObjects,
		MinAttributes: cfg.Table.MinAttributes,
		MaxAttributes: cfg.Table.MaxAttributes,
		DecisionName:  cfg.Table.DecisionName,
	}

	return labModel{
		form:    ui.NewDimensionsModel(styles, bounds),
		results: ui.NewResultsModel(styles),
		spinner: sp,
		styles:  styles,
		cfg:     cfg,
	}
}

func (m labModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m labModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updatePhase(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.form.SetSize(msg.Width, m.bodyHeight())
		m.grid.SetSize(msg.Width, m.bodyHeight())
		m.results.SetSize(msg.Width, m.bodyHeight())
		return m, nil

	case spinner.TickMsg:
		if m.analyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case analysisDoneMsg:
		m.analyzing = false
		m.results.SetPrefix(ui.FromDecisionTable("Input Table", msg.table).View(m.styles))
		m.results.SetMarkdown(msg.markdown)
		m.phase = phaseResults
		return m, nil

	case analysisErrMsg:
		m.analyzing = false
		m.grid.SetError(msg.err.Error())
		return m, nil
	}

	return m.updatePhase(msg)
}

// updatePhase routes a message to the page the lab currently shows.
func (m labModel) updatePhase(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseDimensions:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if m.form.Done() {
			objects, attributes, decisionName := m.form.Values()
			m.form.Reset()
			if !m.hasGrid || m.grid.Objects() != objects || m.grid.Attributes() != attributes || m.grid.DecisionName() != decisionName {
				m.grid = ui.NewGridModel(m.styles, objects, attributes, decisionName)
				m.grid.SetSize(m.width, m.bodyHeight())
				m.hasGrid = true
			}
			m.phase = phaseGrid
			return m, textinput.Blink
		}
		return m, cmd

	case phaseGrid:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				m.phase = phaseDimensions
				return m, nil
			case "ctrl+r":
				return m.startAnalysis()
			}
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd

	case phaseResults:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "e", "esc":
				m.phase = phaseGrid
				return m, nil
			case "n":
				m.phase = phaseDimensions
				m.hasGrid = false
				return m, nil
			case "q":
				return m, tea.Quit
			}
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	return m, nil
}

// startAnalysis validates the grid and launches the analysis in the
// background.
func (m labModel) startAnalysis() (tea.Model, tea.Cmd) {
	tbl, err := m.grid.Table()
	if err != nil {
		var incomplete *decision.IncompleteTableError
		if errors.As(err, &incomplete) {
			m.grid.SetError("Please fill all cells — empty values break equivalence classes.")
		} else {
			m.grid.SetError(err.Error())
		}
		return m, nil
	}

	m.grid.ClearError()
	m.analyzing = true
	return m, tea.Batch(
		m.spinner.Tick,
		m.runAnalysis(tbl),
	)
}

// runAnalysis runs the full pipeline off the UI goroutine.
func (m labModel) runAnalysis(tbl *decision.Table) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		analyzer := rough.NewAnalyzer(
			rough.WithLogger(logger),
			rough.WithMaxAttributes(m.cfg.Analysis.MaxAttributes),
			rough.WithWorkers(m.cfg.Analysis.Workers),
		)
		report, err := analyzer.Run(ctx, tbl)
		if err != nil {
			return analysisErrMsg{err}
		}

		var audit *verification.Audit
		if m.cfg.Audit.Enabled {
			auditor := verification.NewAuditor(verification.WithLogger(logger))
			audit, err = auditor.AuditRules(ctx, tbl, report.Rules)
			if err != nil {
				return analysisErrMsg{fmt.Errorf("rule audit failed: %w", err)}
			}
		}

		return analysisDoneMsg{
			table:    tbl,
			markdown: articulation.NewEmitter().Markdown(report, audit),
		}
	}
}

func (m labModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.phase {
	case phaseDimensions:
		body = m.form.View()
	case phaseGrid:
		body = m.grid.View()
		if m.analyzing {
			body += "\n" + m.styles.Spinner.Render(m.spinner.View()) + " Analyzing..."
		}
	case phaseResults:
		body = m.results.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.styles.Content.Render(body),
	)
}

func (m labModel) renderHeader() string {
	var status string
	if m.analyzing {
		status = m.styles.Warning.Render("● Analyzing")
	} else {
		status = m.styles.Success.Render("● Ready")
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		ui.Logo(m.styles),
		"  ",
		status,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.RenderDivider(m.width),
	)
}

// bodyHeight is the vertical room left for the page under the header.
func (m labModel) bodyHeight() int {
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

// runLab starts the interactive lab interface
func runLab() error {
	p := tea.NewProgram(
		initLab(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
