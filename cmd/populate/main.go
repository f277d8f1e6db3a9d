package main

import (
	"flag"
	"fmt"
	"os"

	"stock-tracker/src/config"
	"stock-tracker/src/data_source/polygon"
	"stock-tracker/src/interfaces"
	"stock-tracker/src/logger"
	"stock-tracker/src/network"
	"stock-tracker/src/pipeline"
	"stock-tracker/src/scraper"
	"stock-tracker/src/storage"
	"stock-tracker/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.Name)

	// Setup storage
	db, err := storage.NewDatabase(config.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// Setup components
	var netMgr interfaces.INetworkManager = network.NewNetworkManager(config.MConfig, appLogger)
	var source interfaces.IMarketData = polygon.NewPolygonSource(config.MConfig, netMgr, appLogger)
	var scr interfaces.IConstituentScraper = scraper.NewConstituentScraper(config.MConfig, netMgr, appLogger)
	gate := utils.NewMarketGate(config.DataDir, appLogger)

	populator := pipeline.NewPopulator(config.MConfig, db, source, scr, gate, appLogger)

	if err := populator.Run(); err != nil {
		appLogger.Critical("Refresh cycle failed: %v", err)
	}
}
