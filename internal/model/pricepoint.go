package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Phase is the market phase of the simulation.
type Phase string

const (
	PhaseBidding Phase = "BIDDING"
	PhaseTrading Phase = "TRADING"
)

// PricePoint is one observation in a price series. Timestamps are UTC
// interval starts: hourly for day-ahead, five-minute for real-time.
type PricePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}
