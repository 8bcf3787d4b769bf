package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a bid.
// Keep these values stable; they appear in API responses and CSV output.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// BidStatus is the lifecycle state of a bid. A bid starts PENDING and
// moves exactly once to EXECUTED or REJECTED during clearing.
type BidStatus string

const (
	StatusPending  BidStatus = "PENDING"
	StatusExecuted BidStatus = "EXECUTED"
	StatusRejected BidStatus = "REJECTED"
)

// Terminal reports whether the status can no longer change.
func (s BidStatus) Terminal() bool {
	return s == StatusExecuted || s == StatusRejected
}

// Bid is a limit order for one delivery hour on the reference delivery date.
// LimitPrice is $/MWh, Quantity is MWh. ClearingPrice is nil until the bid
// is resolved by the clearing engine.
type Bid struct {
	ID            string           `json:"id"`
	ParticipantID string           `json:"participant_id"`
	Hour          int              `json:"hour"`
	Side          Side             `json:"side"`
	LimitPrice    decimal.Decimal  `json:"limit_price"`
	Quantity      decimal.Decimal  `json:"quantity"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	Status        BidStatus        `json:"status"`
	ClearingPrice *decimal.Decimal `json:"clearing_price,omitempty"`
}
