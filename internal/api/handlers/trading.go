package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"virtual-energy-trader/internal/api/models"
	"virtual-energy-trader/internal/market"
	"virtual-energy-trader/internal/model"
)

// TradingHandler exposes bid submission and bid/trade listings.
type TradingHandler struct {
	sim *market.Simulation
}

func NewTradingHandler(sim *market.Simulation) *TradingHandler {
	return &TradingHandler{sim: sim}
}

// SubmitBid handles POST /api/v1/bids.
func (h *TradingHandler) SubmitBid(c *gin.Context) {
	var req models.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	bid, err := h.sim.SubmitBid(
		req.ParticipantID,
		*req.Hour,
		model.Side(req.Side),
		decimal.NewFromFloat(req.Price),
		decimal.NewFromFloat(req.Quantity),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SubmitBidResponse{BidID: bid.ID})
}

// SubmitBulk handles POST /api/v1/bids/bulk.
func (h *TradingHandler) SubmitBulk(c *gin.Context) {
	var req models.BulkSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	entries := make([]market.BidEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Hour == nil {
			badRequest(c, "INVALID_REQUEST", "entry is missing hour")
			return
		}
		entries = append(entries, market.BidEntry{
			ParticipantID: e.ParticipantID,
			Hour:          *e.Hour,
			Side:          model.Side(e.Side),
			Price:         decimal.NewFromFloat(e.Price),
			Quantity:      decimal.NewFromFloat(e.Quantity),
		})
	}
	bids, err := h.sim.SubmitBids(entries)
	if err != nil {
		writeError(c, err)
		return
	}
	ids := make([]string, len(bids))
	for i, b := range bids {
		ids[i] = b.ID
	}
	c.JSON(http.StatusOK, models.BulkSubmitResponse{BidIDs: ids})
}

// ListBids handles GET /api/v1/bids?participant_id=...
func (h *TradingHandler) ListBids(c *gin.Context) {
	participantID := c.Query("participant_id")
	if participantID == "" {
		badRequest(c, "MISSING_PARAM", "participant_id query parameter is required")
		return
	}
	bids := h.sim.Bids(participantID)
	out := make([]models.BidView, 0, len(bids))
	for _, b := range bids {
		view := models.BidView{
			ID:            b.ID,
			ParticipantID: b.ParticipantID,
			Hour:          b.Hour,
			Side:          string(b.Side),
			LimitPrice:    b.LimitPrice.InexactFloat64(),
			Quantity:      b.Quantity.InexactFloat64(),
			SubmittedAt:   b.SubmittedAt,
			Status:        string(b.Status),
		}
		if b.ClearingPrice != nil {
			v := b.ClearingPrice.InexactFloat64()
			view.ClearingPrice = &v
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, models.ListBidsResponse{Bids: out})
}

// ListTrades handles GET /api/v1/trades.
func (h *TradingHandler) ListTrades(c *gin.Context) {
	trades, total, err := h.sim.Trades()
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]models.TradeView, 0, len(trades))
	for _, t := range trades {
		view := models.TradeView{
			ID:            t.ID,
			BidID:         t.BidID,
			ParticipantID: t.ParticipantID,
			Hour:          t.Hour,
			Side:          string(t.Side),
			ExecutedPrice: t.ExecutedPrice.InexactFloat64(),
			Quantity:      t.Quantity.InexactFloat64(),
			Timestamp:     t.Timestamp,
		}
		if t.RealTimeAverage != nil {
			v := t.RealTimeAverage.InexactFloat64()
			view.RealTimeAverage = &v
		}
		if t.PnL != nil {
			v := t.PnL.InexactFloat64()
			view.PnL = &v
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, models.ListTradesResponse{
		Trades:   out,
		TotalPnL: total.InexactFloat64(),
	})
}

// ExportTrades handles GET /api/v1/trades/export, streaming the trade
// ledger as CSV.
func (h *TradingHandler) ExportTrades(c *gin.Context) {
	trades, _, err := h.sim.Trades()
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := market.WriteTradesCSV(c.Writer, trades); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "EXPORT_ERROR", Message: err.Error()},
		})
	}
}
