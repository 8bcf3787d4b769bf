package api

import (
	"github.com/gin-gonic/gin"

	"virtual-energy-trader/internal/api/handlers"
	"virtual-energy-trader/internal/api/middleware"
	"virtual-energy-trader/internal/market"
)

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	CORSOrigins []string
	// Production disables the set-time test hook.
	Production bool
}

// NewRouter assembles the gin engine for one simulation instance.
func NewRouter(sim *market.Simulation, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	simHandler := handlers.NewSimulationHandler(sim)
	tradingHandler := handlers.NewTradingHandler(sim)
	marketHandler := handlers.NewMarketHandler(sim)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulation/initialize", simHandler.Initialize)
		v1.GET("/simulation/status", simHandler.Status)
		v1.POST("/simulation/advance", simHandler.Advance)
		v1.POST("/simulation/back-to-bidding", simHandler.BackToBidding)
		v1.POST("/simulation/reset", simHandler.Reset)
		if !opts.Production {
			v1.POST("/simulation/time", simHandler.SetTime)
		}

		v1.POST("/bids", tradingHandler.SubmitBid)
		v1.POST("/bids/bulk", tradingHandler.SubmitBulk)
		v1.GET("/bids", tradingHandler.ListBids)

		v1.GET("/trades", tradingHandler.ListTrades)
		v1.GET("/trades/export", tradingHandler.ExportTrades)

		v1.GET("/market/summary", marketHandler.Summary)
		v1.GET("/market/timeseries", marketHandler.Timeseries)
	}

	return router
}
