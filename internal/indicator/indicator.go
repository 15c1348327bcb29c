package indicator

import (
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

// Indicator interface defines methods that every per-bar indicator calculator must implement.
type Indicator interface {
	// Name returns the group the indicator fills.
	Name() types.IndicatorType
	// Config configures the indicator periods and constants.
	Config(params ...any) error
	// Lookback returns how many bars back a value at index i may depend on.
	Lookback() int
	// Compute writes the group value of bars[i] into out. It reads only bars[:i+1]
	// and the recurrence state of the previous bar, and advances next.
	// Calculators are only called for finite bars.
	Compute(bars []types.Bar, i int, prev, next *State, out *types.Indicators)
}

// intParam reads an integer parameter. Whole float64 values are accepted so configs
// decoded from JSON work unchanged.
func intParam(name string, v any) (int, error) {
	switch p := v.(type) {
	case int:
		return p, nil
	case float64:
		if p != float64(int(p)) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "%s must be a whole number, got %v", name, p)
		}

		return int(p), nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}
}

// periodParam reads a strictly positive period.
func periodParam(name string, v any) (int, error) {
	period, err := intParam(name, v)
	if err != nil {
		return 0, err
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}

// periodsParam reads a non-empty list of periods. It accepts either variadic ints
// or a single []int.
func periodsParam(name string, params []any) ([]int, error) {
	if len(params) == 1 {
		if list, ok := params[0].([]int); ok {
			params = make([]any, len(list))
			for i, p := range list {
				params[i] = p
			}
		}
	}

	if len(params) == 0 {
		return nil, errors.Newf(errors.ErrCodeMissingParameter, "Config expects at least 1 %s", name)
	}

	periods := make([]int, 0, len(params))
	for _, p := range params {
		period, err := periodParam(name, p)
		if err != nil {
			return nil, err
		}

		periods = append(periods, period)
	}

	return periods, nil
}

// window returns the trailing n bars ending at i, or false when fewer than n bars
// exist or any of them is not finite.
func window(bars []types.Bar, i, n int) ([]types.Bar, bool) {
	if n <= 0 || i+1 < n {
		return nil, false
	}

	w := bars[i-n+1 : i+1]
	for _, b := range w {
		if !b.IsFinite() {
			return nil, false
		}
	}

	return w, true
}

func maxOf(values []int) int {
	longest := 0
	for _, v := range values {
		longest = max(longest, v)
	}

	return longest
}
