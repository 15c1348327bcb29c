package marker

import (
	"cmp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"go.uber.org/zap"
)

// Marker keeps the price and trade annotations shown over the bars.
type Marker interface {
	// AddOrderLine stores an order line, replacing one with the same ID.
	AddOrderLine(line types.OrderLine) error
	// UpdateOrderLine replaces an existing order line.
	UpdateOrderLine(line types.OrderLine) error
	// RemoveOrderLine deletes the order line with the given ID.
	RemoveOrderLine(id string) error
	// OrderLines returns every order line ordered by ID.
	OrderLines() []types.OrderLine
	// AddBuySellMark stores a mark, replacing one with the same ID.
	AddBuySellMark(mark types.BuySellMark) error
	// UpdateBuySellMark replaces an existing mark, moving it to its new bar.
	UpdateBuySellMark(mark types.BuySellMark) error
	// RemoveBuySellMark deletes the mark with the given ID.
	RemoveBuySellMark(id string) error
	// BuySellMarks returns every mark ordered by time then ID.
	BuySellMarks() []types.BuySellMark
	// MarkAt returns the mark of the given side pinned to the bar at ts.
	MarkAt(ts int64, side types.MarkSide) optional.Option[types.BuySellMark]
}

var _ Marker = (*Book)(nil)

// Book is the in-memory Marker. Buy and sell marks are also indexed by bar
// timestamp; each bar shows at most one mark per side and the latest wins.
type Book struct {
	mu         sync.RWMutex
	orderLines map[string]types.OrderLine
	marks      map[string]types.BuySellMark
	bySide     map[types.MarkSide]map[int64]string
	validate   *validator.Validate
	logger     *logger.Logger
}

// NewBook creates an empty book.
func NewBook(log *logger.Logger) *Book {
	return &Book{
		orderLines: make(map[string]types.OrderLine),
		marks:      make(map[string]types.BuySellMark),
		bySide: map[types.MarkSide]map[int64]string{
			types.MarkSideBuy:  {},
			types.MarkSideSell: {},
		},
		validate: validator.New(),
		logger:   log.Named("marker"),
	}
}

func (b *Book) AddOrderLine(line types.OrderLine) error {
	if err := b.validate.Struct(line); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMarker, "invalid order line", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.orderLines[line.ID] = line
	b.logger.Debug("order line stored", zap.String("id", line.ID), zap.Float64("price", line.Price))

	return nil
}

func (b *Book) UpdateOrderLine(line types.OrderLine) error {
	if err := b.validate.Struct(line); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMarker, "invalid order line", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orderLines[line.ID]; !ok {
		return errors.Newf(errors.ErrCodeMarkerNotFound, "order line %q not found", line.ID)
	}

	b.orderLines[line.ID] = line

	return nil
}

func (b *Book) RemoveOrderLine(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orderLines[id]; !ok {
		b.logger.Warn("ignoring removal of unknown order line", zap.String("id", id))

		return errors.Newf(errors.ErrCodeMarkerNotFound, "order line %q not found", id)
	}

	delete(b.orderLines, id)

	return nil
}

func (b *Book) OrderLines() []types.OrderLine {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.OrderLine, 0, len(b.orderLines))
	for _, line := range b.orderLines {
		out = append(out, line)
	}

	slices.SortFunc(out, func(a, c types.OrderLine) int {
		return cmp.Compare(a.ID, c.ID)
	})

	return out
}

func (b *Book) AddBuySellMark(mark types.BuySellMark) error {
	if err := b.validate.Struct(mark); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMarker, "invalid buy/sell mark", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.put(mark)
	b.logger.Debug("buy/sell mark stored", zap.String("id", mark.ID), zap.Int64("time", mark.Time), zap.String("side", string(mark.Side)))

	return nil
}

func (b *Book) UpdateBuySellMark(mark types.BuySellMark) error {
	if err := b.validate.Struct(mark); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMarker, "invalid buy/sell mark", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.marks[mark.ID]; !ok {
		return errors.Newf(errors.ErrCodeMarkerNotFound, "buy/sell mark %q not found", mark.ID)
	}

	b.put(mark)

	return nil
}

func (b *Book) RemoveBuySellMark(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.marks[id]; !ok {
		b.logger.Warn("ignoring removal of unknown buy/sell mark", zap.String("id", id))

		return errors.Newf(errors.ErrCodeMarkerNotFound, "buy/sell mark %q not found", id)
	}

	b.unindex(id)
	delete(b.marks, id)

	return nil
}

func (b *Book) BuySellMarks() []types.BuySellMark {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.BuySellMark, 0, len(b.marks))
	for _, mark := range b.marks {
		out = append(out, mark)
	}

	slices.SortFunc(out, func(a, c types.BuySellMark) int {
		if n := cmp.Compare(a.Time, c.Time); n != 0 {
			return n
		}

		return cmp.Compare(a.ID, c.ID)
	})

	return out
}

func (b *Book) MarkAt(ts int64, side types.MarkSide) optional.Option[types.BuySellMark] {
	b.mu.RLock()
	defer b.mu.RUnlock()

	id, ok := b.bySide[side][ts]
	if !ok {
		return optional.None[types.BuySellMark]()
	}

	return optional.Some(b.marks[id])
}

// put stores mark and moves its index entry. Caller holds the write lock.
func (b *Book) put(mark types.BuySellMark) {
	b.unindex(mark.ID)

	if prev, ok := b.bySide[mark.Side][mark.Time]; ok && prev != mark.ID {
		b.logger.Debug("buy/sell mark replaces another on the same bar",
			zap.String("id", mark.ID), zap.String("replaced", prev), zap.Int64("time", mark.Time))
	}

	b.marks[mark.ID] = mark
	b.bySide[mark.Side][mark.Time] = mark.ID
}

// unindex drops the timestamp index entry of id if it still points at id.
func (b *Book) unindex(id string) {
	old, ok := b.marks[id]
	if !ok {
		return
	}

	if b.bySide[old.Side][old.Time] == id {
		delete(b.bySide[old.Side], old.Time)
	}
}
