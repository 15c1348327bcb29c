package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// Application states.
const (
	StateIndicatorSelect = iota
	StateBarTable
	StateGoto
	StateDetail
)

// BarLoader loads the bars shown by the browser.
type BarLoader func() ([]types.Bar, error)

// Model is the Bubble Tea model of the bar browser.
type Model struct {
	state         int
	indicatorList list.Model
	gotoInput     textinput.Model
	barTable      table.Model
	cfg           *config.Config
	formatter     *format.Formatter
	bars          []types.Bar
	primary       types.IndicatorType
	secondary     types.IndicatorType
	detail        []types.DetailItem
	loader        BarLoader
	err           error
	width         int
	height        int
}

// NewModel creates a browser showing the indicators of cfg. loader may be nil
// when bars arrive as BarsLoadedMsg.
func NewModel(cfg *config.Config, loader BarLoader) Model {
	return Model{
		state:         StateIndicatorSelect,
		indicatorList: NewIndicatorList(),
		gotoInput:     NewGotoInput(cfg.Format.TimeLayout),
		barTable:      NewBarTable(),
		cfg:           cfg,
		formatter:     format.New(cfg),
		primary:       cfg.Layout.PrimaryIndicator,
		secondary:     cfg.Layout.SecondaryIndicator,
		loader:        loader,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}

	load := m.loader

	return func() tea.Msg {
		bars, err := load()
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return BarsLoadedMsg{Bars: bars}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' if not in text input mode
			if m.state != StateGoto {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.indicatorList.SetSize(msg.Width, msg.Height-4)
		m.barTable.SetWidth(msg.Width)
		m.barTable.SetHeight(msg.Height - 6)

		return m, nil

	case BarsLoadedMsg:
		m.bars = msg.Bars
		m.err = nil
		m.barTable = UpdateTable(m.barTable, m.formatter, m.bars, m.primary, m.secondary)

		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err

		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateIndicatorSelect:
		return m.updateIndicatorSelect(msg)
	case StateBarTable:
		return m.updateBarTable(msg)
	case StateGoto:
		return m.updateGoto(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateBarTable:
		m.state = StateIndicatorSelect
	case StateGoto:
		m.gotoInput.Reset()
		m.gotoInput.Blur()
		m.err = nil
		m.state = StateBarTable
	case StateDetail:
		m.detail = nil
		m.state = StateBarTable
	}

	return m, nil
}

func (m Model) updateIndicatorSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if item, ok := m.indicatorList.SelectedItem().(listItem); ok {
			m.secondary = types.IndicatorType(item.name)

			// the detail panel follows the selected columns
			cfg := *m.cfg
			cfg.Layout.SecondaryIndicator = m.secondary
			m.formatter = format.New(&cfg)

			m.barTable = UpdateTable(m.barTable, m.formatter, m.bars, m.primary, m.secondary)
			m.state = StateBarTable

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.indicatorList, cmd = m.indicatorList.Update(msg)

	return m, cmd
}

func (m Model) updateBarTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			i := m.barTable.Cursor()
			if i >= 0 && i < len(m.bars) {
				m.detail = m.formatter.Details(m.bars[i])
				m.state = StateDetail
			}

			return m, nil
		case "g":
			m.state = StateGoto
			m.gotoInput.Focus()

			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.barTable, cmd = m.barTable.Update(msg)

	return m, cmd
}

func (m Model) updateGoto(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		i, err := m.findBar(m.gotoInput.Value())
		if err != nil {
			m.err = err

			return m, nil
		}

		m.barTable.SetCursor(i)
		m.gotoInput.Reset()
		m.gotoInput.Blur()
		m.err = nil
		m.state = StateBarTable

		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)

	return m, cmd
}

// findBar resolves an index, or the first bar at or after a time in the
// configured layout.
func (m Model) findBar(input string) (int, error) {
	input = strings.TrimSpace(input)
	if len(m.bars) == 0 {
		return 0, fmt.Errorf("no bars loaded")
	}

	if i, err := strconv.Atoi(input); err == nil {
		if i < 0 || i >= len(m.bars) {
			return 0, fmt.Errorf("index %d out of range [0,%d)", i, len(m.bars))
		}

		return i, nil
	}

	t, err := time.ParseInLocation(m.cfg.Format.TimeLayout, input, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("expected an index or a time like %q", m.cfg.Format.TimeLayout)
	}

	ts := t.UnixMilli()
	i := sort.Search(len(m.bars), func(i int) bool { return m.bars[i].Timestamp >= ts })

	return min(i, len(m.bars)-1), nil
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateIndicatorSelect:
		s.WriteString(TitleStyle.Render("Argo Kline - Bar Browser"))
		s.WriteString("\n\n")
		s.WriteString(m.indicatorList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateBarTable:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Bars (%d) - %s / %s", len(m.bars), m.primary, m.secondary)))
		s.WriteString("\n\n")
		m.writeError(&s)

		if len(m.bars) == 0 {
			s.WriteString("Loading bars...\n")
		} else {
			s.WriteString(m.barTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Enter: details | g: go to | Esc: back | q: quit"))

	case StateGoto:
		s.WriteString(TitleStyle.Render("Go To Bar"))
		s.WriteString("\n\n")
		m.writeError(&s)
		s.WriteString(m.gotoInput.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to jump, Esc to go back"))

	case StateDetail:
		s.WriteString(TitleStyle.Render("Bar Details"))
		s.WriteString("\n\n")

		for _, item := range m.detail {
			value := lipgloss.NewStyle()
			if item.Color != "" {
				value = value.Foreground(lipgloss.Color(item.Color))
			}

			s.WriteString(LabelStyle.Render(item.Title))
			s.WriteString(value.Render(item.Value))
			s.WriteString("\n")
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Esc: back | q: quit"))
	}

	return s.String()
}

func (m Model) writeError(s *strings.Builder) {
	if m.err != nil {
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}
}
