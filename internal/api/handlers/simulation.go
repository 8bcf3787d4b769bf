package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"virtual-energy-trader/internal/api/models"
	"virtual-energy-trader/internal/market"
)

// SimulationHandler exposes the phase-transition operations.
type SimulationHandler struct {
	sim *market.Simulation
}

func NewSimulationHandler(sim *market.Simulation) *SimulationHandler {
	return &SimulationHandler{sim: sim}
}

// Initialize handles POST /api/v1/simulation/initialize.
func (h *SimulationHandler) Initialize(c *gin.Context) {
	res, err := h.sim.Initialize()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InitializeResponse{
		Initialized:    res.Initialized,
		AlreadyLoaded:  res.Already,
		ReferenceDate:  res.DeliveryDate.Format("2006-01-02"),
		DayAheadPoints: res.DayAheadPoints,
		RealTimePoints: res.RealTimePoints,
		Source:         res.Source,
	})
}

// Status handles GET /api/v1/simulation/status.
func (h *SimulationHandler) Status(c *gin.Context) {
	st := h.sim.Status()
	c.JSON(http.StatusOK, models.StatusResponse{
		Phase:           string(st.Phase),
		CanPlaceBids:    st.CanPlaceBids,
		SecondsToCutoff: st.SecondsToCutoff,
		BiddingDate:     st.BiddingDate.Format("2006-01-02"),
		DeliveryDate:    st.DeliveryDate.Format("2006-01-02"),
		DataInitialized: st.DataInitialized,
		SimulatedTime:   st.SimulatedTime,
	})
}

// Advance handles POST /api/v1/simulation/advance.
func (h *SimulationHandler) Advance(c *gin.Context) {
	res, err := h.sim.Advance()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AdvanceResponse{
		ClearedCount:  res.ClearedCount,
		Executed:      res.Executed,
		Rejected:      res.Rejected,
		SimulatedTime: res.SimulatedTime,
	})
}

// BackToBidding handles POST /api/v1/simulation/back-to-bidding.
func (h *SimulationHandler) BackToBidding(c *gin.Context) {
	ts, err := h.sim.BackToBidding()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SimulatedTimeResponse{SimulatedTime: ts})
}

// SetTime handles POST /api/v1/simulation/time. The route is only
// registered outside production.
func (h *SimulationHandler) SetTime(c *gin.Context) {
	var req models.SetTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	ts, err := h.sim.SetTime(*req.Hour, *req.Minute)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SimulatedTimeResponse{SimulatedTime: ts})
}

// Reset handles POST /api/v1/simulation/reset.
func (h *SimulationHandler) Reset(c *gin.Context) {
	bids, trades := h.sim.Reset()
	c.JSON(http.StatusOK, models.ResetResponse{
		ClearedBids:   bids,
		ClearedTrades: trades,
	})
}
