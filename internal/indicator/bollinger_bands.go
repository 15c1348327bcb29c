package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

// BollingerBands implements BOLL: an MA middle band and bands at k population
// standard deviations over the same window.
type BollingerBands struct {
	period     int
	multiplier float64
}

// NewBollingerBands creates a new BOLL indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period:     20,
		multiplier: 2,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBOLL
}

// Config configures the indicator. Expected parameters: period (int), multiplier (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), multiplier (float64)")
	}

	period, err := periodParam("period", params[0])
	if err != nil {
		return err
	}

	var multiplier float64

	switch v := params[1].(type) {
	case float64:
		multiplier = v
	case int:
		multiplier = float64(v)
	default:
		return errors.New(errors.ErrCodeInvalidType, "invalid type for multiplier parameter, expected float64")
	}

	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return errors.Newf(errors.ErrCodeInvalidMultiplier, "multiplier must be a positive number, got %v", multiplier)
	}

	bb.period = period
	bb.multiplier = multiplier

	return nil
}

// Lookback returns the band period.
func (bb *BollingerBands) Lookback() int {
	return bb.period
}

// Compute writes the three bands of bars[i].
func (bb *BollingerBands) Compute(bars []types.Bar, i int, _, _ *State, out *types.Indicators) {
	w, ok := window(bars, i, bb.period)
	if !ok {
		out.BOLL = optional.None[types.BOLL]()

		return
	}

	n := float64(bb.period)

	sum := 0.0
	for _, b := range w {
		sum += b.Close
	}

	mid := sum / n

	variance := 0.0
	for _, b := range w {
		d := b.Close - mid
		variance += d * d
	}

	stddev := math.Sqrt(variance / n)

	out.BOLL = optional.Some(types.BOLL{
		Up:   mid + bb.multiplier*stddev,
		Mid:  mid,
		Down: mid - bb.multiplier*stddev,
	})
}
