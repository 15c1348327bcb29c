package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"go.uber.org/zap"
)

// Engine computes every indicator group of a bar sequence incrementally.
// It holds no bar data; callers pass the bars together with the parallel slice
// of recurrence states they own.
type Engine struct {
	registry    IndicatorRegistry
	calculators []Indicator
	periods     map[types.IndicatorType]int
	lookback    int
	logger      *logger.Logger
}

// NewEngine configures one calculator per group from cfg.
func NewEngine(cfg config.IndicatorConfig, log *logger.Logger) (*Engine, error) {
	setups := []struct {
		indicator Indicator
		params    []any
	}{
		{NewMA(), []any{cfg.MAPeriods}},
		{NewVolumeMA(), []any{cfg.VolumeMAPeriods}},
		{NewBollingerBands(), []any{cfg.BOLLPeriod, cfg.BOLLMultiplier}},
		{NewMACD(), []any{cfg.MACDShort, cfg.MACDLong, cfg.MACDSignal}},
		{NewKDJ(), []any{cfg.KDJPeriod, cfg.KDJM1, cfg.KDJM2}},
		{NewRSI(), []any{cfg.RSIPeriods}},
		{NewWilliamsR(), []any{cfg.WRPeriods}},
	}

	registry := NewIndicatorRegistry()
	for _, s := range setups {
		if err := s.indicator.Config(s.params...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to configure %s", s.indicator.Name())
		}

		if err := registry.RegisterIndicator(s.indicator); err != nil {
			return nil, err
		}
	}

	return NewEngineWithRegistry(registry, log)
}

// NewEngineWithRegistry builds an engine over already configured calculators.
// Calculators run in types.AllIndicatorTypes order; missing groups stay absent.
func NewEngineWithRegistry(registry IndicatorRegistry, log *logger.Logger) (*Engine, error) {
	e := &Engine{
		registry: registry,
		periods:  make(map[types.IndicatorType]int),
		logger:   log.Named("indicator"),
	}

	for _, name := range types.AllIndicatorTypes {
		ind, err := registry.GetIndicator(name)
		if err != nil {
			continue
		}

		e.calculators = append(e.calculators, ind)
		e.lookback = max(e.lookback, ind.Lookback())

		if p, ok := ind.(interface{ Periods() []int }); ok {
			e.periods[name] = len(p.Periods())
		}
	}

	if len(e.calculators) == 0 {
		return nil, errors.New(errors.ErrCodeIndicatorNotFound, "no indicator registered")
	}

	return e, nil
}

// Registry returns the calculator registry.
func (e *Engine) Registry() IndicatorRegistry {
	return e.registry
}

// Lookback returns the longest dependency distance of any calculator.
func (e *Engine) Lookback() int {
	return e.lookback
}

// SuppliedMask returns the groups present in a host payload. A slice group whose
// length differs from the configured periods is ignored and will be computed.
func (e *Engine) SuppliedMask(ind types.Indicators) Mask {
	var m Mask

	for _, t := range types.AllIndicatorTypes {
		if !ind.Has(t) {
			continue
		}

		if want, ok := e.periods[t]; ok && sliceLen(ind, t) != want {
			e.logger.Warn("ignoring supplied indicator group with wrong length",
				zap.String("group", string(t)),
				zap.Int("expected", want),
				zap.Int("got", sliceLen(ind, t)),
			)

			continue
		}

		m |= MaskOf(t)
	}

	return m
}

// Compute fills indicators and states for bars[from:to] using only bars[:to].
// states must be parallel to bars. Groups marked in states[i].Supplied keep the
// values already on the bar, and present values of groups marked in
// states[i].Carried overlay the computed ones; the recurrence still advances
// from raw OHLCV.
func (e *Engine) Compute(bars []types.Bar, states []State, from, to int) {
	if from < 0 {
		from = 0
	}

	if to > len(bars) {
		to = len(bars)
	}

	for i := from; i < to; i++ {
		e.computeAt(bars, states, i)
	}
}

// RepairPrefix recomputes the bars whose windows reach into the first k bars
// after k older bars were placed in front. Later bars are left untouched.
// Carried-over groups of repaired bars are dropped and recomputed from the new
// history.
func (e *Engine) RepairPrefix(bars []types.Bar, states []State, k int) int {
	end := min(len(bars), k+e.lookback)
	for i := range end {
		states[i].Carried = 0
	}

	e.Compute(bars, states, 0, end)

	return end
}

func (e *Engine) computeAt(bars []types.Bar, states []State, i int) {
	var prev State
	if i > 0 {
		prev = states[i-1]
	}

	next := prev.Clone()
	next.Supplied = states[i].Supplied
	next.Carried = states[i].Carried

	bar := bars[i]

	var out types.Indicators

	if bar.IsFinite() {
		for _, calc := range e.calculators {
			calc.Compute(bars, i, &prev, &next, &out)
		}

		next.HasClose = true
		next.LastClose = bar.Close
	} else {
		out = e.absent()

		e.logger.Debug("non-finite bar excluded from indicators", zap.Int("index", i), zap.Int64("timestamp", bar.Timestamp))
	}

	for _, t := range types.AllIndicatorTypes {
		switch {
		case next.Supplied.Has(t):
			out.CopyGroup(t, bar.Indicators)
		case next.Carried.Has(t):
			out.MergeGroup(t, bar.Indicators)
		}
	}

	bars[i].Indicators = out
	states[i] = next
}

// absent returns a value set with every group absent and slice groups sized to
// their configured periods.
func (e *Engine) absent() types.Indicators {
	nones := func(t types.IndicatorType) []optional.Option[float64] {
		n, ok := e.periods[t]
		if !ok {
			return nil
		}

		out := make([]optional.Option[float64], n)
		for i := range out {
			out[i] = optional.None[float64]()
		}

		return out
	}

	return types.Indicators{
		MA:       nones(types.IndicatorTypeMA),
		VolumeMA: nones(types.IndicatorTypeVolumeMA),
		RSI:      nones(types.IndicatorTypeRSI),
		WR:       nones(types.IndicatorTypeWR),
	}
}

func sliceLen(ind types.Indicators, t types.IndicatorType) int {
	switch t {
	case types.IndicatorTypeMA:
		return len(ind.MA)
	case types.IndicatorTypeVolumeMA:
		return len(ind.VolumeMA)
	case types.IndicatorTypeRSI:
		return len(ind.RSI)
	case types.IndicatorTypeWR:
		return len(ind.WR)
	default:
		return 0
	}
}
