package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// MA implements the simple moving average of close, or of volume for the volume pane.
type MA struct {
	name    types.IndicatorType
	periods []int
	source  func(types.Bar) float64
}

// NewMA creates a close-price MA indicator with the default periods.
func NewMA() Indicator {
	return &MA{
		name:    types.IndicatorTypeMA,
		periods: []int{5, 10, 20, 30, 60},
		source:  func(b types.Bar) float64 { return b.Close },
	}
}

// NewVolumeMA creates a volume MA indicator with the default periods.
func NewVolumeMA() Indicator {
	return &MA{
		name:    types.IndicatorTypeVolumeMA,
		periods: []int{5, 10},
		source:  func(b types.Bar) float64 { return b.Volume },
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return m.name
}

// Config configures the MA periods. Expected parameters: one or more periods (int) or a single []int.
func (m *MA) Config(params ...any) error {
	periods, err := periodsParam("period", params)
	if err != nil {
		return err
	}

	m.periods = periods

	return nil
}

// Periods returns the configured periods.
func (m *MA) Periods() []int {
	return m.periods
}

// Lookback returns the longest period.
func (m *MA) Lookback() int {
	return maxOf(m.periods)
}

// Compute writes one average per period. Periods without enough history are absent.
func (m *MA) Compute(bars []types.Bar, i int, _, _ *State, out *types.Indicators) {
	values := make([]optional.Option[float64], len(m.periods))
	for k, period := range m.periods {
		values[k] = m.average(bars, i, period)
	}

	if m.name == types.IndicatorTypeVolumeMA {
		out.VolumeMA = values
	} else {
		out.MA = values
	}
}

func (m *MA) average(bars []types.Bar, i, period int) optional.Option[float64] {
	w, ok := window(bars, i, period)
	if !ok {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, b := range w {
		sum += m.source(b)
	}

	return optional.Some(sum / float64(period))
}
