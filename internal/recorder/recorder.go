package recorder

import (
	"time"

	"virtual-energy-trader/internal/model"
)

// ClearingEvent holds the outcome of one clearing run for audit.
type ClearingEvent struct {
	ClearedAt time.Time
	Bids      []model.Bid
	Trades    []model.Trade
}

// Recorder persists clearing history for later analysis. Implementations
// are best-effort: the simulation logs failures and continues.
type Recorder interface {
	RecordClearing(evt *ClearingEvent) error
	Close() error
}
