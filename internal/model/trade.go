package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is created one-to-one for every bid that clears EXECUTED.
// ExecutedPrice is the day-ahead clearing price for the bid's hour.
type Trade struct {
	ID            string          `json:"id"`
	BidID         string          `json:"bid_id"`
	ParticipantID string          `json:"participant_id"`
	Side          Side            `json:"side"`
	Hour          int             `json:"hour"`
	ExecutedPrice decimal.Decimal `json:"executed_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Timestamp     time.Time       `json:"timestamp"`
}

// SettledTrade is a Trade plus its mark-to-market view at a given simulated
// time. RealTimeAverage and PnL are nil until at least one real-time price
// point for the trade's hour has elapsed.
type SettledTrade struct {
	Trade
	RealTimeAverage *decimal.Decimal `json:"real_time_average,omitempty"`
	PnL             *decimal.Decimal `json:"pnl,omitempty"`
}
