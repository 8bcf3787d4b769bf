package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"virtual-energy-trader/internal/api"
	"virtual-energy-trader/internal/config"
	"virtual-energy-trader/internal/data"
	"virtual-energy-trader/internal/market"
	"virtual-energy-trader/internal/recorder"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Audit recorder: SQLite when configured, otherwise a no-op.
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Recorder.SQLitePath != "" {
		sqliteRec, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open recorder: %v", err)
		}
		defer sqliteRec.Close()
		rec = sqliteRec
	}

	// Primary provider is Grid Status when an API key is present; the
	// deterministic synthetic series covers everything else.
	var provider market.Provider
	if cfg.GridStatus.APIKey != "" {
		client := data.NewGridStatusClient(cfg.GridStatus.APIKey, cfg.GridStatus.BaseURL)
		client.DayAheadDataset = cfg.GridStatus.DayAheadDataset
		client.RealTimeDataset = cfg.GridStatus.RealTimeDataset
		client.LocationType = cfg.GridStatus.LocationType
		provider = client
	} else {
		log.Printf("No Grid Status API key configured; using synthetic market data")
	}

	sim, err := market.NewSimulation(market.Options{
		DeliveryDate: cfg.DeliveryDate(),
		StartHour:    cfg.Market.StartHour,
		CutoffHour:   cfg.Market.CutoffHour,
		BatchLimit:   cfg.Market.BatchLimit,
		Provider:     provider,
		Fallback:     &data.Synthetic{},
		Recorder:     rec,
	})
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	router := api.NewRouter(sim, api.RouterOptions{
		CORSOrigins: cfg.Server.CORSOrigins,
		Production:  cfg.IsProduction(),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting API server on %s (delivery date %s)",
		addr, cfg.DeliveryDate().Format("2006-01-02"))
	if err := router.Run(addr); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
