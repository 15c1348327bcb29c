package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// Both EMAs are seeded with the close of the first bar and DEA with the first DIF,
// so a value exists from the first bar on.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam("fastPeriod", params[0])
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam("slowPeriod", params[1])
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam("signalPeriod", params[2])
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Lookback returns the horizon after which the recurrence has absorbed its seed.
func (m *MACD) Lookback() int {
	return m.slowPeriod + m.signalPeriod
}

// Compute advances both EMAs and the signal line.
func (m *MACD) Compute(bars []types.Bar, i int, prev, next *State, out *types.Indicators) {
	closePrice := bars[i].Close

	if !prev.MACDSeeded {
		next.MACDSeeded = true
		next.EMAShort = closePrice
		next.EMALong = closePrice
		next.DEA = 0
	} else {
		next.EMAShort = ema(prev.EMAShort, closePrice, m.fastPeriod)
		next.EMALong = ema(prev.EMALong, closePrice, m.slowPeriod)
		next.DEA = ema(prev.DEA, next.EMAShort-next.EMALong, m.signalPeriod)
	}

	dif := next.EMAShort - next.EMALong

	out.MACD = optional.Some(types.MACD{
		Dif:  dif,
		Dea:  next.DEA,
		Macd: 2 * (dif - next.DEA),
	})
}

// ema applies one step of an exponential moving average with alpha = 2/(period+1).
func ema(prev, value float64, period int) float64 {
	alpha := 2.0 / float64(period+1)

	return prev + alpha*(value-prev)
}
