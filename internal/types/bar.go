package types

import (
	"math"
	"time"
)

// Bar is one committed OHLCV sample with its computed indicators.
type Bar struct {
	// Timestamp is the bar open time in unix milliseconds.
	Timestamp  int64
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	Indicators Indicators
}

// BarInput is a bar as delivered by the host. Indicator groups are optional and,
// when supplied, are kept instead of being computed.
type BarInput struct {
	Timestamp  int64
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	Indicators Indicators
}

// Time returns the bar timestamp as a UTC time.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// IsFinite reports whether every raw OHLCV field is a finite number.
func (b Bar) IsFinite() bool {
	return isFinite(b.Open) && isFinite(b.High) && isFinite(b.Low) && isFinite(b.Close) && isFinite(b.Volume)
}

// Clone returns a deep copy of the bar.
func (b Bar) Clone() Bar {
	b.Indicators = b.Indicators.Clone()

	return b
}

// IsFinite reports whether every raw OHLCV field is a finite number.
func (b BarInput) IsFinite() bool {
	return isFinite(b.Open) && isFinite(b.High) && isFinite(b.Low) && isFinite(b.Close) && isFinite(b.Volume)
}

// ToBar converts the input into a bar carrying only the supplied indicators.
func (b BarInput) ToBar() Bar {
	return Bar{
		Timestamp:  b.Timestamp,
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		Indicators: b.Indicators.Clone(),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
