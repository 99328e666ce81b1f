package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finsight-dev/finsight/internal/analysis"
	"github.com/finsight-dev/finsight/internal/indicator"
	"github.com/finsight-dev/finsight/internal/period"
)

// Application states.
const (
	StateSymbolInput = iota
	StateLoading
	StateDashboard
)

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	state        int
	runner       *analysis.Runner
	cfg          indicator.Config
	activePeriod period.Period
	symbol       string
	symbolInput  textinput.Model
	barTable     table.Model
	report       *analysis.Report
	err          error
	width        int
	height       int
}

// NewModel creates a Model starting at symbol entry, prefilled with the
// configured default symbol.
func NewModel(runner *analysis.Runner, cfg indicator.Config, symbol string, p period.Period) Model {
	input := NewSymbolInput()
	input.SetValue(symbol)

	return Model{
		state:        StateSymbolInput,
		runner:       runner,
		cfg:          cfg,
		activePeriod: p,
		symbolInput:  input,
		barTable:     NewBarTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != StateSymbolInput {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.barTable.SetWidth(msg.Width)
		if msg.Height > 14 {
			m.barTable.SetHeight(msg.Height - 12)
		}

		return m, nil

	case ReportMsg:
		m.report = msg.Report
		m.err = nil
		m.state = StateDashboard
		m.barTable = UpdateBarTable(m.barTable, m.report, m.cfg)

		return m, nil

	case ReportErrorMsg:
		m.err = msg.Err
		m.state = StateSymbolInput
		m.symbolInput.Focus()

		return m, textinput.Blink
	}

	switch m.state {
	case StateSymbolInput:
		return m.updateSymbolInput(msg)
	case StateDashboard:
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateDashboard {
		m.symbolInput.SetValue(m.symbol)
		m.symbolInput.Focus()
		m.state = StateSymbolInput

		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) updateSymbolInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		symbol := strings.ToUpper(strings.TrimSpace(m.symbolInput.Value()))
		if symbol != "" {
			m.symbol = symbol
			m.state = StateLoading
			m.symbolInput.Blur()

			return m, m.loadReport()
		}
	}

	var cmd tea.Cmd
	m.symbolInput, cmd = m.symbolInput.Update(msg)

	return m, cmd
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "p":
			m.activePeriod = m.activePeriod.Next()
			m.state = StateLoading

			return m, m.loadReport()
		case "r":
			m.runner.Refresh()
			m.state = StateLoading

			return m, m.loadReport()
		case "1":
			m.cfg.SMA.Enabled = !m.cfg.SMA.Enabled

			return m.reload()
		case "2":
			m.cfg.EMA.Enabled = !m.cfg.EMA.Enabled

			return m.reload()
		case "3":
			m.cfg.RSI.Enabled = !m.cfg.RSI.Enabled

			return m.reload()
		case "4":
			m.cfg.MACD.Enabled = !m.cfg.MACD.Enabled

			return m.reload()
		case "5":
			m.cfg.Bollinger.Enabled = !m.cfg.Bollinger.Enabled

			return m.reload()
		}
	}

	var cmd tea.Cmd
	m.barTable, cmd = m.barTable.Update(msg)

	return m, cmd
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.state = StateLoading

	return m, m.loadReport()
}

// loadReport runs one analysis pass off the update loop.
func (m Model) loadReport() tea.Cmd {
	runner := m.runner
	symbol := m.symbol
	activePeriod := m.activePeriod
	cfg := m.cfg

	return func() tea.Msg {
		report, err := runner.Run(context.Background(), symbol, activePeriod, cfg)
		if err != nil {
			return ReportErrorMsg{Err: err}
		}

		return ReportMsg{Report: report}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateSymbolInput:
		s.WriteString(TitleStyle.Render("Finsight - Stock Dashboard"))
		s.WriteString("\n\n")
		s.WriteString("Enter a ticker symbol:\n\n")
		s.WriteString(m.symbolInput.View())
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(HelpStyle.Render("Press Enter to load, Ctrl+C to quit"))

	case StateLoading:
		s.WriteString(TitleStyle.Render("Finsight - Stock Dashboard"))
		s.WriteString("\n\n")
		fmt.Fprintf(&s, "Loading %s (%s)...\n", m.symbol, m.activePeriod.Label())

	case StateDashboard:
		s.WriteString(RenderQuote(m.report.Quote))
		s.WriteString(RenderWarnings(m.report.Warnings))
		fmt.Fprintf(&s, "\nPeriod: %s  Bars: %d\n\n", m.activePeriod.Label(), m.report.Filtered.Len())
		s.WriteString(m.barTable.View())
		s.WriteString("\n")
		s.WriteString(RenderArticles(m.report.Articles))
		s.WriteString(RenderToggles(m.cfg))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("p: period | r: refresh | Esc: symbol | q: quit"))
	}

	return s.String()
}
