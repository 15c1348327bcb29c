package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// WilliamsR implements WR = (HH(n) - close) / (HH(n) - LL(n)) * 100.
// A flat window yields 50.
type WilliamsR struct {
	periods []int
}

// NewWilliamsR creates a new WR indicator with default configuration.
func NewWilliamsR() Indicator {
	return &WilliamsR{
		periods: []int{14},
	}
}

// Name returns the name of the indicator.
func (w *WilliamsR) Name() types.IndicatorType {
	return types.IndicatorTypeWR
}

// Config configures the WR indicator. Expected parameters: one or more periods (int) or a single []int.
func (w *WilliamsR) Config(params ...any) error {
	periods, err := periodsParam("period", params)
	if err != nil {
		return err
	}

	w.periods = periods

	return nil
}

// Periods returns the configured periods.
func (w *WilliamsR) Periods() []int {
	return w.periods
}

// Lookback returns the longest period.
func (w *WilliamsR) Lookback() int {
	return maxOf(w.periods)
}

// Compute writes one WR value per period.
func (w *WilliamsR) Compute(bars []types.Bar, i int, _, _ *State, out *types.Indicators) {
	values := make([]optional.Option[float64], len(w.periods))
	for k, period := range w.periods {
		win, ok := window(bars, i, period)
		if !ok {
			values[k] = optional.None[float64]()

			continue
		}

		hh, ll := highLow(win)
		if hh == ll {
			values[k] = optional.Some(50.0)

			continue
		}

		values[k] = optional.Some((hh - bars[i].Close) / (hh - ll) * 100)
	}

	out.WR = values
}
