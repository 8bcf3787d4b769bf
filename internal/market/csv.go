package market

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"virtual-energy-trader/internal/model"
)

// WriteTradesCSV streams settled trades as CSV, one row per trade.
func WriteTradesCSV(out io.Writer, trades []model.SettledTrade) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"trade_id",
		"bid_id",
		"participant_id",
		"hour",
		"side",
		"executed_price",
		"quantity",
		"cleared_at",
		"real_time_average",
		"pnl",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		rtAvg := ""
		if t.RealTimeAverage != nil {
			rtAvg = t.RealTimeAverage.String()
		}
		pnl := ""
		if t.PnL != nil {
			pnl = t.PnL.String()
		}
		row := []string{
			t.ID,
			t.BidID,
			t.ParticipantID,
			strconv.Itoa(t.Hour),
			string(t.Side),
			t.ExecutedPrice.String(),
			t.Quantity.String(),
			fmtTime(t.Timestamp),
			rtAvg,
			pnl,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
