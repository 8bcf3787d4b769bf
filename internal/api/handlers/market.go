package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"virtual-energy-trader/internal/api/models"
	"virtual-energy-trader/internal/market"
	"virtual-energy-trader/internal/model"
)

// MarketHandler exposes the read-only market data views.
type MarketHandler struct {
	sim *market.Simulation
}

func NewMarketHandler(sim *market.Simulation) *MarketHandler {
	return &MarketHandler{sim: sim}
}

// Summary handles GET /api/v1/market/summary.
func (h *MarketHandler) Summary(c *gin.Context) {
	sum, err := h.sim.Summary()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SummaryResponse{
		DayAhead: statsView(sum.DayAhead),
		RealTime: statsView(sum.RealTime),
		Spread:   sum.Spread.InexactFloat64(),
	})
}

// Timeseries handles GET /api/v1/market/timeseries.
func (h *MarketHandler) Timeseries(c *gin.Context) {
	ts, err := h.sim.Timeseries()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TimeseriesResponse{
		ReferenceDate: ts.DeliveryDate.Format("2006-01-02"),
		DayAhead:      pointViews(ts.DayAhead),
		RealTime:      pointViews(ts.RealTime),
	})
}

func statsView(st market.SeriesStats) models.SeriesStatsView {
	return models.SeriesStatsView{
		Latest: st.Latest.InexactFloat64(),
		Min:    st.Min.InexactFloat64(),
		Max:    st.Max.InexactFloat64(),
		Mean:   st.Mean.InexactFloat64(),
		Count:  st.Count,
	}
}

func pointViews(points []model.PricePoint) []models.PricePointView {
	out := make([]models.PricePointView, len(points))
	for i, p := range points {
		out[i] = models.PricePointView{
			Timestamp: p.Timestamp,
			Price:     p.Price.InexactFloat64(),
		}
	}
	return out
}
