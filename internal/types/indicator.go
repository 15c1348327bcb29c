package types

import "github.com/moznion/go-optional"

// IndicatorType names an indicator group computed for every bar.
type IndicatorType string

const (
	IndicatorTypeMA       IndicatorType = "ma"
	IndicatorTypeVolumeMA IndicatorType = "volume_ma"
	IndicatorTypeBOLL     IndicatorType = "boll"
	IndicatorTypeMACD     IndicatorType = "macd"
	IndicatorTypeKDJ      IndicatorType = "kdj"
	IndicatorTypeRSI      IndicatorType = "rsi"
	IndicatorTypeWR       IndicatorType = "wr"
	IndicatorTypeNone     IndicatorType = "none"
)

// AllIndicatorTypes lists every computed group in engine order.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeMA,
	IndicatorTypeVolumeMA,
	IndicatorTypeBOLL,
	IndicatorTypeMACD,
	IndicatorTypeKDJ,
	IndicatorTypeRSI,
	IndicatorTypeWR,
}

// BOLL holds the three Bollinger bands of one bar.
type BOLL struct {
	Up   float64 `json:"up"`
	Mid  float64 `json:"mid"`
	Down float64 `json:"down"`
}

// MACD holds the MACD line values of one bar.
type MACD struct {
	Dif  float64 `json:"dif"`
	Dea  float64 `json:"dea"`
	Macd float64 `json:"macd"`
}

// KDJ holds the stochastic K, D and J values of one bar.
type KDJ struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
	J float64 `json:"j"`
}

// Indicators carries every indicator value of one bar. A None entry means the
// value is absent (insufficient history or a disqualified bar). Slice groups are
// aligned with the configured periods of that group.
//
// On input an empty slice or a None group means "not supplied".
type Indicators struct {
	MA       []optional.Option[float64]
	VolumeMA []optional.Option[float64]
	BOLL     optional.Option[BOLL]
	MACD     optional.Option[MACD]
	KDJ      optional.Option[KDJ]
	RSI      []optional.Option[float64]
	WR       []optional.Option[float64]
}

// Has reports whether the group is populated.
func (i Indicators) Has(t IndicatorType) bool {
	switch t {
	case IndicatorTypeMA:
		return len(i.MA) > 0
	case IndicatorTypeVolumeMA:
		return len(i.VolumeMA) > 0
	case IndicatorTypeBOLL:
		return i.BOLL.IsSome()
	case IndicatorTypeMACD:
		return i.MACD.IsSome()
	case IndicatorTypeKDJ:
		return i.KDJ.IsSome()
	case IndicatorTypeRSI:
		return len(i.RSI) > 0
	case IndicatorTypeWR:
		return len(i.WR) > 0
	default:
		return false
	}
}

// CopyGroup copies group t from src into i.
func (i *Indicators) CopyGroup(t IndicatorType, src Indicators) {
	switch t {
	case IndicatorTypeMA:
		i.MA = cloneOptions(src.MA)
	case IndicatorTypeVolumeMA:
		i.VolumeMA = cloneOptions(src.VolumeMA)
	case IndicatorTypeBOLL:
		i.BOLL = src.BOLL
	case IndicatorTypeMACD:
		i.MACD = src.MACD
	case IndicatorTypeKDJ:
		i.KDJ = src.KDJ
	case IndicatorTypeRSI:
		i.RSI = cloneOptions(src.RSI)
	case IndicatorTypeWR:
		i.WR = cloneOptions(src.WR)
	}
}

// MergeGroup overlays the present values of group t in src onto i. Entries
// absent in src, or a slice group of a different length, keep the values of i.
func (i *Indicators) MergeGroup(t IndicatorType, src Indicators) {
	switch t {
	case IndicatorTypeMA:
		mergeOptions(i.MA, src.MA)
	case IndicatorTypeVolumeMA:
		mergeOptions(i.VolumeMA, src.VolumeMA)
	case IndicatorTypeBOLL:
		if src.BOLL.IsSome() {
			i.BOLL = src.BOLL
		}
	case IndicatorTypeMACD:
		if src.MACD.IsSome() {
			i.MACD = src.MACD
		}
	case IndicatorTypeKDJ:
		if src.KDJ.IsSome() {
			i.KDJ = src.KDJ
		}
	case IndicatorTypeRSI:
		mergeOptions(i.RSI, src.RSI)
	case IndicatorTypeWR:
		mergeOptions(i.WR, src.WR)
	}
}

// Clone returns a deep copy.
func (i Indicators) Clone() Indicators {
	return Indicators{
		MA:       cloneOptions(i.MA),
		VolumeMA: cloneOptions(i.VolumeMA),
		BOLL:     i.BOLL,
		MACD:     i.MACD,
		KDJ:      i.KDJ,
		RSI:      cloneOptions(i.RSI),
		WR:       cloneOptions(i.WR),
	}
}

func cloneOptions(src []optional.Option[float64]) []optional.Option[float64] {
	if src == nil {
		return nil
	}

	out := make([]optional.Option[float64], len(src))
	copy(out, src)

	return out
}

func mergeOptions(dst, src []optional.Option[float64]) {
	if len(dst) != len(src) {
		return
	}

	for k, v := range src {
		if v.IsSome() {
			dst[k] = v
		}
	}
}
