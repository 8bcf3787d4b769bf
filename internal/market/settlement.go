package market

import (
	"time"

	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/model"
)

// settleTrade computes the mark-to-market view of a trade at the given
// simulated time. The real-time average covers only the five-minute points
// of the trade's hour that have elapsed; with no elapsed points both
// average and P&L stay nil.
//
// BUY profits when real-time averages above the executed price, SELL when
// below. The computation is a pure function of the series and the clock,
// so repeated calls at the same simulated time return identical values.
func settleTrade(tr model.Trade, store *SeriesStore, until time.Time) model.SettledTrade {
	out := model.SettledTrade{Trade: tr}

	points := store.RealTimeForHour(tr.Hour, until)
	if len(points) == 0 {
		return out
	}

	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Price)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(points))))

	var pnl decimal.Decimal
	switch tr.Side {
	case model.SideSell:
		pnl = tr.ExecutedPrice.Sub(avg).Mul(tr.Quantity)
	default:
		pnl = avg.Sub(tr.ExecutedPrice).Mul(tr.Quantity)
	}

	out.RealTimeAverage = &avg
	out.PnL = &pnl
	return out
}

// settleAll settles every trade and sums the non-nil P&Ls.
func settleAll(trades []model.Trade, store *SeriesStore, until time.Time) ([]model.SettledTrade, decimal.Decimal) {
	out := make([]model.SettledTrade, 0, len(trades))
	total := decimal.Zero
	for _, tr := range trades {
		st := settleTrade(tr, store, until)
		if st.PnL != nil {
			total = total.Add(*st.PnL)
		}
		out = append(out, st)
	}
	return out, total
}
