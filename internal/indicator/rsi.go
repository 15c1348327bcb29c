package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// RSI represents the Relative Strength Index indicator with Wilder smoothing.
// The first value is the simple mean of the first period changes, so it needs
// period+1 bars.
type RSI struct {
	periods []int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		periods: []int{14},
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: one or more periods (int) or a single []int.
func (r *RSI) Config(params ...any) error {
	periods, err := periodsParam("period", params)
	if err != nil {
		return err
	}

	r.periods = periods

	return nil
}

// Periods returns the configured periods.
func (r *RSI) Periods() []int {
	return r.periods
}

// Lookback returns the longest period plus the bar that seeds the first change.
func (r *RSI) Lookback() int {
	return maxOf(r.periods) + 1
}

// Compute advances the gain/loss averages of every period.
func (r *RSI) Compute(bars []types.Bar, i int, prev, next *State, out *types.Indicators) {
	if len(next.RSI) != len(r.periods) {
		next.RSI = make([]rsiState, len(r.periods))
	}

	values := make([]optional.Option[float64], len(r.periods))
	for k := range values {
		values[k] = optional.None[float64]()
	}

	if !prev.HasClose {
		out.RSI = values

		return
	}

	change := bars[i].Close - prev.LastClose
	gain, loss := max(change, 0), max(-change, 0)

	for k, period := range r.periods {
		var s rsiState
		if k < len(prev.RSI) {
			s = prev.RSI[k]
		}

		p := float64(period)

		switch {
		case s.Count < period:
			s.Count++
			s.SumGain += gain
			s.SumLoss += loss

			if s.Count == period {
				s.AvgGain = s.SumGain / p
				s.AvgLoss = s.SumLoss / p
				values[k] = optional.Some(rsiValue(s))
			}
		default:
			s.AvgGain = (s.AvgGain*(p-1) + gain) / p
			s.AvgLoss = (s.AvgLoss*(p-1) + loss) / p
			values[k] = optional.Some(rsiValue(s))
		}

		next.RSI[k] = s
	}

	out.RSI = values
}

func rsiValue(s rsiState) float64 {
	if s.AvgLoss == 0 {
		return 100
	}

	return 100 - 100/(1+s.AvgGain/s.AvgLoss)
}
