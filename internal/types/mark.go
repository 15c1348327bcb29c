package types

// OrderLineType is the kind of a horizontal order line.
type OrderLineType string

const (
	OrderLineTypeLimit       OrderLineType = "limit"
	OrderLineTypeLiquidation OrderLineType = "liquidation"
	OrderLineTypeStopLoss    OrderLineType = "stop_loss"
	OrderLineTypeTakeProfit  OrderLineType = "take_profit"
)

// OrderLine is a horizontal price annotation keyed by ID.
type OrderLine struct {
	ID     string        `json:"id" validate:"required"`
	Type   OrderLineType `json:"type" validate:"required"`
	Price  float64       `json:"price" validate:"gt=0"`
	Amount float64       `json:"amount" validate:"gte=0"`
	Color  string        `json:"color" validate:"omitempty,hexcolor"`
}

// MarkSide is the side of a buy/sell mark.
type MarkSide string

const (
	MarkSideBuy  MarkSide = "buy"
	MarkSideSell MarkSide = "sell"
)

// BuySellMark pins a trade marker to the bar with the given timestamp.
type BuySellMark struct {
	ID     string   `json:"id" validate:"required"`
	Time   int64    `json:"time" validate:"gt=0"`
	Side   MarkSide `json:"type" validate:"oneof=buy sell"`
	Price  float64  `json:"price" validate:"gte=0"`
	Amount float64  `json:"amount" validate:"gte=0"`
}

// DetailItem is one labelled row of the selected-bar detail panel. Color is a
// hex string for rows tinted by the bar direction.
type DetailItem struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}
