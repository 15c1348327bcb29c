package main

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// listItem implements list.Item for the indicator list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewIndicatorList creates the list used to pick the secondary indicator columns.
func NewIndicatorList() list.Model {
	items := []list.Item{
		listItem{name: string(types.IndicatorTypeMACD), description: "MACD DIF, DEA and histogram"},
		listItem{name: string(types.IndicatorTypeKDJ), description: "Stochastic K, D and J"},
		listItem{name: string(types.IndicatorTypeRSI), description: "Relative strength index"},
		listItem{name: string(types.IndicatorTypeWR), description: "Williams %R"},
		listItem{name: string(types.IndicatorTypeNone), description: "OHLCV and main pane indicators only"},
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Indicator"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewGotoInput creates the input used to jump to a bar by index or time.
func NewGotoInput(timeLayout string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "index or " + timeLayout
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "

	return ti
}

// NewBarTable creates an empty bar table.
func NewBarTable() table.Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTable replaces the columns and rows of t. The cursor moves to the
// newest bar.
func UpdateTable(t table.Model, f *format.Formatter, bars []types.Bar, primary, secondary types.IndicatorType) table.Model {
	titles := f.Columns(primary, secondary)
	columns := make([]table.Column, len(titles))

	for i, title := range titles {
		width := 10
		if i == 0 {
			width = 17
		}

		columns[i] = table.Column{Title: title, Width: width}
	}

	rows := make([]table.Row, 0, len(bars))

	for i, bar := range bars {
		row := f.Row(bar, primary, secondary)
		if i > 0 {
			row[4] = WithTrend(row[4], bar.Close, bars[i-1].Close)
		}

		rows = append(rows, row)
	}

	// rows must never be wider than the columns
	t.SetRows(nil)
	t.SetColumns(columns)
	t.SetRows(rows)
	t.SetCursor(len(rows) - 1)

	return t
}
