package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

// kdjSeed is the starting value of K and D.
const kdjSeed = 50.0

// KDJ implements the stochastic KDJ oscillator.
//
//	RSV = (close - LL(n)) / (HH(n) - LL(n)) * 100
//	K   = ((m1-1)*K' + RSV) / m1
//	D   = ((m2-1)*D' + K) / m2
//	J   = 3K - 2D
type KDJ struct {
	period int
	m1     int
	m2     int
}

// NewKDJ creates a new KDJ indicator with default configuration.
func NewKDJ() Indicator {
	return &KDJ{
		period: 9,
		m1:     3,
		m2:     3,
	}
}

// Name returns the name of the indicator.
func (k *KDJ) Name() types.IndicatorType {
	return types.IndicatorTypeKDJ
}

// Config configures the indicator. Expected parameters: period (int), m1 (int), m2 (int).
func (k *KDJ) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: period (int), m1 (int), m2 (int)")
	}

	period, err := periodParam("period", params[0])
	if err != nil {
		return err
	}

	m1, err := periodParam("m1", params[1])
	if err != nil {
		return err
	}

	m2, err := periodParam("m2", params[2])
	if err != nil {
		return err
	}

	k.period = period
	k.m1 = m1
	k.m2 = m2

	return nil
}

// Lookback returns the RSV window.
func (k *KDJ) Lookback() int {
	return k.period
}

// Compute advances K and D once the RSV window is full.
func (k *KDJ) Compute(bars []types.Bar, i int, prev, next *State, out *types.Indicators) {
	w, ok := window(bars, i, k.period)
	if !ok {
		out.KDJ = optional.None[types.KDJ]()

		return
	}

	hh, ll := highLow(w)

	rsv := 50.0
	if hh != ll {
		rsv = (bars[i].Close - ll) / (hh - ll) * 100
	}

	prevK, prevD := kdjSeed, kdjSeed
	if prev.KDJSeeded {
		prevK, prevD = prev.K, prev.D
	}

	m1 := float64(k.m1)
	m2 := float64(k.m2)

	next.KDJSeeded = true
	next.K = ((m1-1)*prevK + rsv) / m1
	next.D = ((m2-1)*prevD + next.K) / m2

	out.KDJ = optional.Some(types.KDJ{
		K: next.K,
		D: next.D,
		J: 3*next.K - 2*next.D,
	})
}

// highLow returns the highest high and the lowest low of a window.
func highLow(w []types.Bar) (float64, float64) {
	hh, ll := w[0].High, w[0].Low
	for _, b := range w[1:] {
		hh = max(hh, b.High)
		ll = min(ll, b.Low)
	}

	return hh, ll
}
