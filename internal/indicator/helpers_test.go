package indicator

import (
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/mocks"
)

func closesToBars(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Timestamp: int64(i + 1),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    100,
		}
	}

	return bars
}

func generatedBars(n int, seed int64) []types.Bar {
	cfg := mocks.DefaultConfig()
	cfg.Count = n

	return mocks.ToBars(mocks.NewDataGenerator(seed).Generate(cfg))
}

func computeAll(e *Engine, bars []types.Bar) []State {
	states := make([]State, len(bars))
	e.Compute(bars, states, 0, len(bars))

	return states
}

func closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}

	return out
}

func highs(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}

	return out
}

func lows(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}

	return out
}
