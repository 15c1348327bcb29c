package indicator

import "github.com/rxtech-lab/argo-kline/internal/types"

// Mask is a bit set of indicator groups, one bit per entry of types.AllIndicatorTypes.
type Mask uint8

// MaskOf returns the bit of one group.
func MaskOf(t types.IndicatorType) Mask {
	for i, it := range types.AllIndicatorTypes {
		if it == t {
			return 1 << i
		}
	}

	return 0
}

// Has reports whether group t is set.
func (m Mask) Has(t types.IndicatorType) bool {
	bit := MaskOf(t)

	return bit != 0 && m&bit != 0
}

// rsiState is the Wilder smoothing state of one RSI period.
type rsiState struct {
	Count   int
	SumGain float64
	SumLoss float64
	AvgGain float64
	AvgLoss float64
}

// State is the recurrence state left behind by one bar. The store keeps one State
// per bar so any suffix can be recomputed without replaying the whole history.
type State struct {
	// Supplied marks groups whose values came from the host and must be kept.
	Supplied Mask
	// Carried marks groups carried over from the previous value of a replaced
	// last bar. Their present values overlay the computed ones until the bar is
	// repaired with older history.
	Carried Mask

	HasClose  bool
	LastClose float64

	MACDSeeded bool
	EMAShort   float64
	EMALong    float64
	DEA        float64

	KDJSeeded bool
	K         float64
	D         float64

	RSI []rsiState
}

// Clone returns a deep copy.
func (s State) Clone() State {
	if s.RSI != nil {
		s.RSI = append([]rsiState(nil), s.RSI...)
	}

	return s
}
