package store

import (
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/indicator"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"go.uber.org/zap"
)

// ChangeKind names a committed mutation.
type ChangeKind string

const (
	ChangeAppend      ChangeKind = "append"
	ChangePrepend     ChangeKind = "prepend"
	ChangeReplaceLast ChangeKind = "replace_last"
)

// Change describes one committed mutation.
type Change struct {
	Kind ChangeKind
	// Count is the number of bars admitted.
	Count int
	// Len is the sequence length after the mutation.
	Len int
}

// Listener is notified after a mutation has been committed and the lock released.
type Listener func(Change)

// Store owns the bar sequence and the parallel indicator recurrence state.
// One RWMutex serializes mutations with each other and with snapshot reads.
//
// The origin counts every bar ever prepended. Readers that remember the origin
// their indices were taken at can keep addressing the same bars after later
// prepends through SnapshotFrom.
type Store struct {
	mu        sync.RWMutex
	bars      []types.Bar
	states    []indicator.State
	origin    int64
	engine    *indicator.Engine
	policy    config.ReplaceLastPolicy
	listeners []Listener
	logger    *logger.Logger
}

// NewStore creates an empty store computing indicators with engine.
func NewStore(engine *indicator.Engine, policy config.ReplaceLastPolicy, log *logger.Logger) *Store {
	if policy == "" {
		policy = config.ReplaceLastCarryOver
	}

	return &Store{
		engine: engine,
		policy: policy,
		logger: log.Named("store"),
	}
}

// OnChange registers a listener.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)
}

// SetReplaceLastPolicy changes the policy used by later ReplaceLast calls.
func (s *Store) SetReplaceLastPolicy(policy config.ReplaceLastPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.policy = policy
}

// Len returns the number of bars.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bars)
}

// Extent returns the length and the origin under one read lock.
func (s *Store) Extent() (int, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bars), s.origin
}

// At returns a copy of the bar at index i.
func (s *Store) At(i int) optional.Option[types.Bar] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.bars) {
		return optional.None[types.Bar]()
	}

	return optional.Some(s.bars[i].Clone())
}

// Snapshot copies bars[start:end], clamped to the sequence.
func (s *Store) Snapshot(start, end int) []types.Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyRange(start, end)
}

// SnapshotFrom copies bars[start:end] where the indices were taken when the
// origin was origin. Bars prepended since then are skipped over.
func (s *Store) SnapshotFrom(origin int64, start, end int) []types.Bar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift := int(s.origin - origin)

	return s.copyRange(start+shift, end+shift)
}

func (s *Store) copyRange(start, end int) []types.Bar {
	start = max(start, 0)
	end = min(end, len(s.bars))

	if start >= end {
		return nil
	}

	out := make([]types.Bar, end-start)
	for i := range out {
		out[i] = s.bars[start+i].Clone()
	}

	return out
}

// Bars copies the whole sequence.
func (s *Store) Bars() []types.Bar {
	return s.Snapshot(0, s.Len())
}

// Append admits bars after the last one. Bars that are not finite or whose
// timestamp does not exceed the previous admitted one are dropped individually.
// It fails only when nothing was admitted.
func (s *Store) Append(inputs []types.BarInput) (int, error) {
	s.mu.Lock()

	lastTs, hasLast := int64(0), len(s.bars) > 0
	if hasLast {
		lastTs = s.bars[len(s.bars)-1].Timestamp
	}

	from := len(s.bars)
	admitted := 0

	for i, in := range inputs {
		if !in.IsFinite() {
			s.logger.Warn("dropping non-finite bar", zap.Int("index", i), zap.Int64("timestamp", in.Timestamp))

			continue
		}

		if hasLast && in.Timestamp <= lastTs {
			s.logger.Warn("dropping out-of-order bar",
				zap.Int("index", i),
				zap.Int64("timestamp", in.Timestamp),
				zap.Int64("last", lastTs),
			)

			continue
		}

		s.bars = append(s.bars, in.ToBar())
		s.states = append(s.states, indicator.State{Supplied: s.engine.SuppliedMask(in.Indicators)})
		lastTs, hasLast = in.Timestamp, true
		admitted++
	}

	if admitted == 0 {
		s.mu.Unlock()

		return 0, errors.Newf(errors.ErrCodeEmptyBatch, "append rejected: all %d bars were invalid", len(inputs))
	}

	s.engine.Compute(s.bars, s.states, from, len(s.bars))
	change := Change{Kind: ChangeAppend, Count: admitted, Len: len(s.bars)}
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, change)

	return admitted, nil
}

// Prepend admits older bars in front of the first one. Inputs are in
// chronological order; validation walks back from the junction so every kept
// bar is strictly older than its successor.
func (s *Store) Prepend(inputs []types.BarInput) (int, error) {
	s.mu.Lock()

	boundary, bounded := int64(0), len(s.bars) > 0
	if bounded {
		boundary = s.bars[0].Timestamp
	}

	kept := make([]types.BarInput, 0, len(inputs))

	for i := len(inputs) - 1; i >= 0; i-- {
		in := inputs[i]
		if !in.IsFinite() {
			s.logger.Warn("dropping non-finite bar", zap.Int("index", i), zap.Int64("timestamp", in.Timestamp))

			continue
		}

		if bounded && in.Timestamp >= boundary {
			s.logger.Warn("dropping out-of-order bar",
				zap.Int("index", i),
				zap.Int64("timestamp", in.Timestamp),
				zap.Int64("first", boundary),
			)

			continue
		}

		kept = append(kept, in)
		boundary, bounded = in.Timestamp, true
	}

	k := len(kept)
	if k == 0 {
		s.mu.Unlock()

		return 0, errors.Newf(errors.ErrCodeEmptyBatch, "prepend rejected: all %d bars were invalid", len(inputs))
	}

	bars := make([]types.Bar, 0, k+len(s.bars))
	states := make([]indicator.State, 0, k+len(s.states))

	for i := k - 1; i >= 0; i-- {
		bars = append(bars, kept[i].ToBar())
		states = append(states, indicator.State{Supplied: s.engine.SuppliedMask(kept[i].Indicators)})
	}

	s.bars = append(bars, s.bars...)
	s.states = append(states, s.states...)
	s.origin += int64(k)

	repaired := s.engine.RepairPrefix(s.bars, s.states, k)
	s.logger.Debug("prepended bars", zap.Int("count", k), zap.Int("repaired", repaired))

	change := Change{Kind: ChangePrepend, Count: k, Len: len(s.bars)}
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, change)

	return k, nil
}

// ReplaceLast substitutes the last bar. The replacement must carry the same
// timestamp. Groups supplied in the payload win; absent groups follow the
// replace-last policy, and recomputation is the fallback when the previous
// value is absent.
func (s *Store) ReplaceLast(input types.BarInput) error {
	s.mu.Lock()

	if len(s.bars) == 0 {
		s.mu.Unlock()

		return errors.Wrap(errors.ErrCodeEmptyBatch, "replace-last rejected",
			errors.New(errors.ErrCodeNoBars, "no bar to replace"))
	}

	last := len(s.bars) - 1
	prev := s.bars[last]

	if !input.IsFinite() {
		s.mu.Unlock()
		s.logger.Warn("dropping non-finite replacement", zap.Int64("timestamp", input.Timestamp))

		return errors.Wrap(errors.ErrCodeEmptyBatch, "replace-last rejected",
			errors.New(errors.ErrCodeInvalidBar, "replacement is not finite"))
	}

	if input.Timestamp != prev.Timestamp {
		s.mu.Unlock()
		s.logger.Warn("dropping replacement for a different slot",
			zap.Int64("timestamp", input.Timestamp),
			zap.Int64("last", prev.Timestamp),
		)

		return errors.Wrap(errors.ErrCodeEmptyBatch, "replace-last rejected",
			errors.Newf(errors.ErrCodeOutOfOrderBar, "replacement timestamp %d does not match last bar %d", input.Timestamp, prev.Timestamp))
	}

	bar := input.ToBar()
	mask := s.engine.SuppliedMask(input.Indicators)

	var carried indicator.Mask

	if s.policy == config.ReplaceLastCarryOver {
		for _, t := range types.AllIndicatorTypes {
			if mask.Has(t) || !hasValue(prev.Indicators, t) {
				continue
			}

			bar.Indicators.CopyGroup(t, prev.Indicators)
			carried |= indicator.MaskOf(t)
		}
	}

	s.bars[last] = bar
	s.states[last].Supplied = mask
	s.states[last].Carried = carried
	s.engine.Compute(s.bars, s.states, last, last+1)

	change := Change{Kind: ChangeReplaceLast, Count: 1, Len: len(s.bars)}
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, change)

	return nil
}

func (s *Store) notify(listeners []Listener, change Change) {
	for _, l := range listeners {
		l(change)
	}
}

// hasValue reports whether group t holds at least one present value.
func hasValue(ind types.Indicators, t types.IndicatorType) bool {
	anySome := func(values []optional.Option[float64]) bool {
		for _, v := range values {
			if v.IsSome() {
				return true
			}
		}

		return false
	}

	switch t {
	case types.IndicatorTypeMA:
		return anySome(ind.MA)
	case types.IndicatorTypeVolumeMA:
		return anySome(ind.VolumeMA)
	case types.IndicatorTypeRSI:
		return anySome(ind.RSI)
	case types.IndicatorTypeWR:
		return anySome(ind.WR)
	default:
		return ind.Has(t)
	}
}
