package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBars returns 60 one-minute bars from 2024-01-01 09:30 UTC with indicators.
func testBars(t *testing.T) []types.Bar {
	t.Helper()

	c, err := chart.New(chart.Options{Logger: logger.NewNopLogger()})
	require.NoError(t, err)

	gen := mocks.DefaultConfig()
	gen.Count = 60
	require.NoError(t, c.AppendCandlesticks(mocks.NewDataGenerator(7).Generate(gen)))

	return c.Store().Bars()
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)

	return model
}

func loadedModel(t *testing.T) Model {
	t.Helper()

	m := NewModel(config.Default(), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})

	return update(t, m, BarsLoadedMsg{Bars: testBars(t)})
}

func TestNewModel(t *testing.T) {
	m := NewModel(config.Default(), nil)

	assert.Equal(t, StateIndicatorSelect, m.state)
	assert.Equal(t, types.IndicatorTypeMA, m.primary)
	assert.Equal(t, types.IndicatorTypeMACD, m.secondary)
	assert.Empty(t, m.bars)
	assert.Nil(t, m.Init())
}

func TestInitRunsLoader(t *testing.T) {
	bars := testBars(t)

	m := NewModel(config.Default(), func() ([]types.Bar, error) { return bars, nil })
	msg := m.Init()()
	assert.Equal(t, BarsLoadedMsg{Bars: bars}, msg)

	failing := NewModel(config.Default(), func() ([]types.Bar, error) { return nil, errors.New("boom") })
	msg = failing.Init()()
	assert.Equal(t, LoadErrorMsg{Err: errors.New("boom")}, msg)
}

func TestSelectIndicatorShowsTable(t *testing.T) {
	m := loadedModel(t)

	// kdj is the second entry
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateBarTable, m.state)
	assert.Equal(t, types.IndicatorTypeKDJ, m.secondary)
	assert.Len(t, m.barTable.Rows(), 60)
	assert.Equal(t, 59, m.barTable.Cursor())
	assert.Contains(t, m.View(), "Bars (60) - ma / kdj")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateIndicatorSelect, m.state)
}

func TestDetailFollowsCursor(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateBarTable, m.state)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateDetail, m.state)
	require.NotEmpty(t, m.detail)
	assert.Equal(t, "Time", m.detail[0].Title)
	assert.Equal(t, "2024-01-01 10:29", m.detail[0].Value)

	view := m.View()
	assert.Contains(t, view, "Bar Details")
	assert.Contains(t, view, "DIF")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBarTable, m.state)
	assert.Nil(t, m.detail)
}

func TestGotoBar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "index", input: "12", expected: 12},
		{name: "exact time", input: "2024-01-01 09:40", expected: 10},
		{name: "time after the last bar", input: "2024-01-02 00:00", expected: 59},
		{name: "time before the first bar", input: "2023-12-31 00:00", expected: 0},
		{name: "index out of range", input: "60", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedModel(t)
			m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			m = update(t, m, keyRunes("g"))
			require.Equal(t, StateGoto, m.state)

			m = update(t, m, keyRunes(tt.input))
			m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if tt.wantErr {
				assert.Equal(t, StateGoto, m.state)
				assert.Error(t, m.err)
				assert.Contains(t, m.View(), "Error:")

				return
			}

			assert.Equal(t, StateBarTable, m.state)
			assert.NoError(t, m.err)
			assert.Equal(t, tt.expected, m.barTable.Cursor())
		})
	}
}

func TestQuitIsTypedInGoto(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, keyRunes("g"))

	m = update(t, m, keyRunes("q"))
	assert.Equal(t, StateGoto, m.state)
	assert.Equal(t, "q", m.gotoInput.Value())
}

func TestLoadErrorIsShown(t *testing.T) {
	m := NewModel(config.Default(), nil)
	m = update(t, m, LoadErrorMsg{Err: errors.New("missing file")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateBarTable, m.state)
	assert.Contains(t, m.View(), "missing file")
}

func TestBrowseFlow(t *testing.T) {
	bars := testBars(t)
	m := NewModel(config.Default(), func() ([]types.Bar, error) { return bars, nil })
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(160, 40))

	// Wait for indicator list to render
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Select Indicator"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Bars (60)"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Bar Details"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(keyRunes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	assert.Equal(t, StateDetail, final.state)
	assert.Len(t, final.bars, 60)
}
