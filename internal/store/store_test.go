package store

import (
	"math"
	"sync"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/indicator"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/mocks"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	engine *indicator.Engine
	store  *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) SetupTest() {
	cfg := config.Default().Indicators
	cfg.MAPeriods = []int{3}

	engine, err := indicator.NewEngine(cfg, logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.engine = engine
	suite.store = NewStore(engine, config.ReplaceLastCarryOver, logger.NewNopLogger())
}

func bar(ts int64, c float64) types.BarInput {
	return types.BarInput{Timestamp: ts, Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
}

func (suite *StoreTestSuite) TestAppendScenario() {
	n, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)
	suite.Equal(3, n)

	bars := suite.store.Bars()
	suite.True(bars[0].Indicators.MA[0].IsNone())
	suite.True(bars[1].Indicators.MA[0].IsNone())
	suite.InDelta(11.0, bars[2].Indicators.MA[0].Unwrap(), 1e-12)
}

func (suite *StoreTestSuite) TestAppendDropsInvalidBarsIndividually() {
	_, err := suite.store.Append([]types.BarInput{bar(5, 10)})
	suite.Require().NoError(err)

	nan := bar(7, 0)
	nan.Close = math.NaN()

	n, err := suite.store.Append([]types.BarInput{bar(4, 1), bar(6, 11), nan, bar(6, 12), bar(8, 13)})
	suite.Require().NoError(err)
	suite.Equal(2, n)

	bars := suite.store.Bars()
	suite.Len(bars, 3)
	suite.Equal([]int64{5, 6, 8}, []int64{bars[0].Timestamp, bars[1].Timestamp, bars[2].Timestamp})
}

func (suite *StoreTestSuite) TestAppendEmptyBatchFails() {
	_, err := suite.store.Append(nil)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))

	_, err = suite.store.Append([]types.BarInput{bar(1, 1)})
	suite.Require().NoError(err)

	_, err = suite.store.Append([]types.BarInput{bar(1, 2), bar(0, 3)})
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))
	suite.Equal(1, suite.store.Len())
}

func (suite *StoreTestSuite) TestAppendNeverChangesExistingBars() {
	gen := mocks.NewDataGenerator(11)
	cfg := mocks.DefaultConfig()
	cfg.Count = 120
	inputs := gen.Generate(cfg)

	_, err := suite.store.Append(inputs[:80])
	suite.Require().NoError(err)

	before := suite.store.Bars()

	_, err = suite.store.Append(inputs[80:])
	suite.Require().NoError(err)

	after := suite.store.Snapshot(0, 80)
	suite.Equal(before, after)
}

func (suite *StoreTestSuite) TestPrependScenario() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)

	n, err := suite.store.Prepend([]types.BarInput{bar(0, 9)})
	suite.Require().NoError(err)
	suite.Equal(1, n)

	bars := suite.store.Bars()
	suite.Len(bars, 4)
	suite.Equal(int64(0), bars[0].Timestamp)
	suite.InDelta((9.0+10+12)/3, bars[2].Indicators.MA[0].Unwrap(), 1e-12)
	suite.InDelta(11.0, bars[3].Indicators.MA[0].Unwrap(), 1e-12)
}

func (suite *StoreTestSuite) TestPrependValidatesFromTheJunction() {
	_, err := suite.store.Append([]types.BarInput{bar(10, 1)})
	suite.Require().NoError(err)

	n, err := suite.store.Prepend([]types.BarInput{bar(5, 1), bar(3, 1), bar(4, 1), bar(12, 1)})
	suite.Require().NoError(err)
	suite.Equal(2, n)

	bars := suite.store.Bars()
	suite.Equal([]int64{3, 4, 10}, []int64{bars[0].Timestamp, bars[1].Timestamp, bars[2].Timestamp})

	_, err = suite.store.Prepend([]types.BarInput{bar(20, 1)})
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))
}

func (suite *StoreTestSuite) TestPrependIntoEmptyStore() {
	n, err := suite.store.Prepend([]types.BarInput{bar(1, 1), bar(2, 2)})
	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.Equal(int64(2), suite.store.At(1).Unwrap().Timestamp)
}

func (suite *StoreTestSuite) TestReplaceLastPreservesLengthAndFields() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)

	before := suite.store.At(2).Unwrap()

	replacement := bar(3, 14)
	suite.Require().NoError(suite.store.ReplaceLast(replacement))

	suite.Equal(3, suite.store.Len())

	after := suite.store.At(2).Unwrap()
	suite.Equal(14.0, after.Close)
	suite.Equal(15.0, after.High)
	// carry-over keeps every group the payload omitted
	suite.Equal(before.Indicators.MA, after.Indicators.MA)
	suite.Equal(before.Indicators.MACD, after.Indicators.MACD)
	suite.Equal(before.Indicators.KDJ, after.Indicators.KDJ)
}

func (suite *StoreTestSuite) TestReplaceLastSuppliedGroupWins() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)

	replacement := bar(3, 14)
	replacement.Indicators.MA = []optional.Option[float64]{optional.Some(42.0)}

	suite.Require().NoError(suite.store.ReplaceLast(replacement))
	suite.Equal(42.0, suite.store.At(2).Unwrap().Indicators.MA[0].Unwrap())
}

func (suite *StoreTestSuite) TestCarriedGroupsAreRecomputedAfterPrepend() {
	cfg := config.Default().Indicators
	cfg.MAPeriods = []int{3, 5}

	engine, err := indicator.NewEngine(cfg, logger.NewNopLogger())
	suite.Require().NoError(err)

	store := NewStore(engine, config.ReplaceLastCarryOver, logger.NewNopLogger())

	_, err = store.Append([]types.BarInput{bar(10, 10), bar(11, 11), bar(12, 12)})
	suite.Require().NoError(err)
	suite.Require().NoError(store.ReplaceLast(bar(12, 13)))

	last := store.At(2).Unwrap().Indicators
	suite.InDelta(11.0, last.MA[0].Unwrap(), 1e-12)
	suite.True(last.MA[1].IsNone())

	_, err = store.Prepend([]types.BarInput{bar(1, 6), bar(2, 7), bar(3, 8), bar(4, 9)})
	suite.Require().NoError(err)

	last = store.At(6).Unwrap().Indicators
	suite.InDelta((10.0+11+13)/3, last.MA[0].Unwrap(), 1e-12)
	suite.Require().True(last.MA[1].IsSome())
	suite.InDelta((8.0+9+10+11+13)/5, last.MA[1].Unwrap(), 1e-12)
}

func (suite *StoreTestSuite) TestReplaceLastRecomputePolicy() {
	suite.store.SetReplaceLastPolicy(config.ReplaceLastRecompute)

	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.ReplaceLast(bar(3, 14)))
	suite.InDelta((10.0+12+14)/3, suite.store.At(2).Unwrap().Indicators.MA[0].Unwrap(), 1e-12)
}

func (suite *StoreTestSuite) TestReplaceLastFallsBackToRecomputeWhenPriorAbsent() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12)})
	suite.Require().NoError(err)

	prior := suite.store.At(1).Unwrap()
	suite.True(prior.Indicators.MA[0].IsNone())

	suite.Require().NoError(suite.store.ReplaceLast(bar(2, 15)))

	last := suite.store.At(1).Unwrap()
	suite.True(last.Indicators.MA[0].IsNone())
	// MACD was present, so it is carried over unchanged
	suite.Equal(prior.Indicators.MACD, last.Indicators.MACD)
}

func (suite *StoreTestSuite) TestReplaceLastRecomputesGroupWithoutPriorValue() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 10), bar(2, 12), bar(3, 11)})
	suite.Require().NoError(err)

	prior := suite.store.At(2).Unwrap().Indicators.RSI

	suite.Require().NoError(suite.store.ReplaceLast(bar(3, 30)))

	// RSI had no value yet, so it is recomputed and stays absent with 3 bars
	suite.Equal(prior, suite.store.At(2).Unwrap().Indicators.RSI)
	suite.True(suite.store.At(2).Unwrap().Indicators.RSI[0].IsNone())
}

func (suite *StoreTestSuite) TestReplaceLastRejections() {
	err := suite.store.ReplaceLast(bar(1, 1))
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))

	_, err = suite.store.Append([]types.BarInput{bar(1, 1)})
	suite.Require().NoError(err)

	err = suite.store.ReplaceLast(bar(2, 1))
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))
	suite.Contains(err.Error(), "does not match")

	nan := bar(1, 1)
	nan.Volume = math.Inf(1)
	err = suite.store.ReplaceLast(nan)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBatch))

	suite.Equal(1.0, suite.store.At(0).Unwrap().Close)
}

func (suite *StoreTestSuite) TestListenersSeeCommittedChanges() {
	var changes []Change

	suite.store.OnChange(func(c Change) {
		// reading back must not deadlock
		suite.Equal(c.Len, suite.store.Len())
		changes = append(changes, c)
	})

	_, _ = suite.store.Append([]types.BarInput{bar(2, 1), bar(3, 1)})
	_, _ = suite.store.Prepend([]types.BarInput{bar(1, 1)})
	_ = suite.store.ReplaceLast(bar(3, 2))
	_, _ = suite.store.Append(nil)

	suite.Equal([]Change{
		{Kind: ChangeAppend, Count: 2, Len: 2},
		{Kind: ChangePrepend, Count: 1, Len: 3},
		{Kind: ChangeReplaceLast, Count: 1, Len: 3},
	}, changes)
}

func (suite *StoreTestSuite) TestSnapshotAndAtBounds() {
	_, err := suite.store.Append([]types.BarInput{bar(1, 1), bar(2, 2)})
	suite.Require().NoError(err)

	suite.Nil(suite.store.Snapshot(2, 5))
	suite.Len(suite.store.Snapshot(-3, 10), 2)
	suite.True(suite.store.At(-1).IsNone())
	suite.True(suite.store.At(2).IsNone())

	snap := suite.store.Snapshot(0, 1)
	snap[0].Close = 99
	suite.Equal(1.0, suite.store.At(0).Unwrap().Close)
}

func (suite *StoreTestSuite) TestSnapshotFromSkipsLaterPrepends() {
	_, err := suite.store.Append([]types.BarInput{bar(10, 1), bar(11, 2)})
	suite.Require().NoError(err)

	n, origin := suite.store.Extent()
	suite.Equal(2, n)
	suite.Equal(int64(0), origin)

	_, err = suite.store.Prepend([]types.BarInput{bar(7, 1), bar(8, 1), bar(9, 1)})
	suite.Require().NoError(err)

	n, now := suite.store.Extent()
	suite.Equal(5, n)
	suite.Equal(int64(3), now)

	snap := suite.store.SnapshotFrom(origin, 1, 2)
	suite.Require().Len(snap, 1)
	suite.Equal(int64(11), snap[0].Timestamp)

	suite.Len(suite.store.SnapshotFrom(now, 0, 5), 5)
}

func (suite *StoreTestSuite) TestConcurrentMutationsAndSnapshots() {
	gen := mocks.NewDataGenerator(3)
	cfg := mocks.DefaultConfig()
	cfg.Count = 400
	inputs := gen.Generate(cfg)

	_, err := suite.store.Append(inputs[200:201])
	suite.Require().NoError(err)

	var wg sync.WaitGroup

	wg.Add(3)

	go func() {
		defer wg.Done()

		for i := 201; i < 400; i++ {
			_, _ = suite.store.Append(inputs[i : i+1])
		}
	}()

	go func() {
		defer wg.Done()

		for i := 199; i >= 0; i-- {
			_, _ = suite.store.Prepend(inputs[i : i+1])
		}
	}()

	go func() {
		defer wg.Done()

		for i := 0; i < 200; i++ {
			snap := suite.store.Bars()
			for j := 1; j < len(snap); j++ {
				if snap[j].Timestamp <= snap[j-1].Timestamp {
					suite.Fail("snapshot out of order")

					return
				}
			}
		}
	}()

	wg.Wait()
	suite.Equal(400, suite.store.Len())
}
