package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/data"
	"virtual-energy-trader/internal/market"
	"virtual-energy-trader/internal/model"
)

// Demo:
// - Build a simulation on the deterministic synthetic series
// - Submit a small book of BUY/SELL bids
// - Advance to the trading day and walk the clock forward
// - Print the settled trades and optionally write them as CSV
func main() {
	dateStr := flag.String("date", "2024-06-12", "Delivery date (YYYY-MM-DD)")
	outCSV := flag.String("out", "", "Optional path to write the trade ledger CSV")
	flag.Parse()

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid date: %v\n", err)
		os.Exit(1)
	}

	sim, err := market.NewSimulation(market.Options{
		DeliveryDate: date,
		Fallback:     &data.Synthetic{},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create simulation: %v\n", err)
		os.Exit(1)
	}

	init, err := sim.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Initialized %s: %d day-ahead, %d real-time points (source=%s)\n",
		init.DeliveryDate.Format("2006-01-02"), init.DayAheadPoints, init.RealTimePoints, init.Source)

	entries := []market.BidEntry{
		{ParticipantID: "demo_user", Hour: 8, Side: model.SideBuy, Price: decimal.NewFromInt(60), Quantity: decimal.NewFromInt(10)},
		{ParticipantID: "demo_user", Hour: 14, Side: model.SideBuy, Price: decimal.NewFromInt(30), Quantity: decimal.NewFromInt(5)},
		{ParticipantID: "demo_user", Hour: 18, Side: model.SideSell, Price: decimal.NewFromInt(40), Quantity: decimal.NewFromInt(8)},
	}
	bids, err := sim.SubmitBids(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "submit bids: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Submitted %d bids\n", len(bids))

	adv, err := sim.Advance()
	if err != nil {
		fmt.Fprintf(os.Stderr, "advance: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared %d bids: %d executed, %d rejected\n", adv.ClearedCount, adv.Executed, adv.Rejected)

	// Walk the delivery day forward and show the mark-to-market total.
	for _, hhmm := range [][2]int{{9, 0}, {15, 0}, {23, 55}} {
		if _, err := sim.SetTime(hhmm[0], hhmm[1]); err != nil {
			fmt.Fprintf(os.Stderr, "set time: %v\n", err)
			os.Exit(1)
		}
		_, total, err := sim.Trades()
		if err != nil {
			fmt.Fprintf(os.Stderr, "trades: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %02d:%02d  total P&L: %s\n", hhmm[0], hhmm[1], total.StringFixed(2))
	}

	trades, total, err := sim.Trades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trades: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%-6s %-4s %-5s %12s %12s %12s\n", "hour", "side", "qty", "executed", "rt_avg", "pnl")
	for _, t := range trades {
		rtAvg, pnl := "-", "-"
		if t.RealTimeAverage != nil {
			rtAvg = t.RealTimeAverage.StringFixed(2)
		}
		if t.PnL != nil {
			pnl = t.PnL.StringFixed(2)
		}
		fmt.Printf("%-6d %-4s %-5s %12s %12s %12s\n",
			t.Hour, t.Side, t.Quantity.String(), t.ExecutedPrice.StringFixed(2), rtAvg, pnl)
	}
	fmt.Printf("\nTotal P&L: %s\n", total.StringFixed(2))

	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create csv: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := market.WriteTradesCSV(f, trades); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote trade ledger to %s\n", *outCSV)
	}
}
