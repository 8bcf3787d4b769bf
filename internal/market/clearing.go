package market

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
)

// ClearingResult summarizes one clearing run.
type ClearingResult struct {
	Executed int
	Rejected int
	Trades   []model.Trade
}

// clearPendingBids resolves every pending bid against the day-ahead price
// for its hour. Clearing is independent per bid: BUY executes when the
// limit is at or above the clearing price, SELL when at or below.
//
// The run is atomic: all clearing prices are resolved before any bid is
// mutated, so a missing day-ahead hour aborts with no state change.
func clearPendingBids(pending []*model.Bid, store *SeriesStore, at time.Time) (*ClearingResult, error) {
	prices := make([]decimal.Decimal, len(pending))
	for i, bid := range pending {
		p, err := store.DayAheadFor(bid.Hour)
		if err != nil {
			return nil, fmt.Errorf("resolve clearing price for bid %s: %w", bid.ID, err)
		}
		prices[i] = p
	}

	res := &ClearingResult{}
	for i, bid := range pending {
		clearing := prices[i]
		executed := false
		switch bid.Side {
		case model.SideBuy:
			executed = bid.LimitPrice.GreaterThanOrEqual(clearing)
		case model.SideSell:
			executed = bid.LimitPrice.LessThanOrEqual(clearing)
		}

		price := clearing
		bid.ClearingPrice = &price
		if !executed {
			bid.Status = model.StatusRejected
			res.Rejected++
			continue
		}
		bid.Status = model.StatusExecuted
		res.Executed++
		res.Trades = append(res.Trades, model.Trade{
			ID:            uuid.NewString(),
			BidID:         bid.ID,
			ParticipantID: bid.ParticipantID,
			Side:          bid.Side,
			Hour:          bid.Hour,
			ExecutedPrice: clearing,
			Quantity:      bid.Quantity,
			Timestamp:     at,
		})
	}
	return res, nil
}
